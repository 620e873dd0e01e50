package rewardclient

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

const (
	AdminRole  = "DEFAULT_ADMIN_ROLE"
	MinterRole = "MINTER_ROLE"
)

// MemoryRewardToken is an in-process reward token with role based access
// control. Accounts holding AdminRole grant and revoke roles, accounts
// holding MinterRole mint.
type MemoryRewardToken struct {
	mu       sync.RWMutex
	name     string
	roles    map[string]map[string]bool
	balances map[string]sdkmath.Uint
	supply   sdkmath.Uint
}

func NewMemoryRewardToken(name, admin string) *MemoryRewardToken {
	return &MemoryRewardToken{
		name: name,
		roles: map[string]map[string]bool{
			AdminRole: {admin: true},
		},
		balances: make(map[string]sdkmath.Uint),
		supply:   sdkmath.ZeroUint(),
	}
}

func (t *MemoryRewardToken) Name() string {
	return t.name
}

func (t *MemoryRewardToken) GrantRole(caller, role, account string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.roles[AdminRole][caller] {
		return fmt.Errorf("%w: %s is missing role %s", ErrUnauthorized, caller, AdminRole)
	}
	if _, ok := t.roles[role]; !ok {
		t.roles[role] = make(map[string]bool)
	}
	t.roles[role][account] = true
	return nil
}

func (t *MemoryRewardToken) RevokeRole(caller, role, account string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.roles[AdminRole][caller] {
		return fmt.Errorf("%w: %s is missing role %s", ErrUnauthorized, caller, AdminRole)
	}
	delete(t.roles[role], account)
	return nil
}

func (t *MemoryRewardToken) HasRole(role, account string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.roles[role][account]
}

func (t *MemoryRewardToken) BalanceOf(account string) sdkmath.Uint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balanceOf(account)
}

func (t *MemoryRewardToken) TotalSupply() sdkmath.Uint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supply
}

// Minter returns a RewardAuthority that mints on behalf of caller.
func (t *MemoryRewardToken) Minter(caller string) RewardAuthority {
	return &minter{token: t, caller: caller}
}

func (t *MemoryRewardToken) mint(caller, to string, amount sdkmath.Uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.roles[MinterRole][caller] {
		return fmt.Errorf("%w: %s is missing role %s", ErrUnauthorized, caller, MinterRole)
	}
	t.balances[to] = t.balanceOf(to).Add(amount)
	t.supply = t.supply.Add(amount)
	return nil
}

func (t *MemoryRewardToken) balanceOf(account string) sdkmath.Uint {
	if balance, ok := t.balances[account]; ok {
		return balance
	}
	return sdkmath.ZeroUint()
}

type minter struct {
	token  *MemoryRewardToken
	caller string
}

func (m *minter) Mint(_ context.Context, to string, amount sdkmath.Uint) error {
	return m.token.mint(m.caller, to, amount)
}
