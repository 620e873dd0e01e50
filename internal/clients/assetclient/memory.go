package assetclient

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// MemoryAssetLedger is a fungible token kept in process memory with
// allowance based delegated transfers. The allowance consumed by
// TransferFrom is the one granted by from to the receiving account.
type MemoryAssetLedger struct {
	mu         sync.Mutex
	name       string
	balances   map[string]sdkmath.Uint
	allowances map[string]map[string]sdkmath.Uint
	supply     sdkmath.Uint
}

func NewMemoryAssetLedger(name string) *MemoryAssetLedger {
	return &MemoryAssetLedger{
		name:       name,
		balances:   make(map[string]sdkmath.Uint),
		allowances: make(map[string]map[string]sdkmath.Uint),
		supply:     sdkmath.ZeroUint(),
	}
}

func (l *MemoryAssetLedger) Name() string {
	return l.name
}

func (l *MemoryAssetLedger) Mint(account string, amount sdkmath.Uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] = l.balanceOf(account).Add(amount)
	l.supply = l.supply.Add(amount)
}

// Approve sets, not increases, the amount spender may pull from owner.
func (l *MemoryAssetLedger) Approve(owner, spender string, amount sdkmath.Uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setAllowance(owner, spender, amount)
}

func (l *MemoryAssetLedger) Allowance(owner, spender string) sdkmath.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowance(owner, spender)
}

func (l *MemoryAssetLedger) TotalSupply() sdkmath.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supply
}

func (l *MemoryAssetLedger) TransferFrom(_ context.Context, from, to string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowed := l.allowance(from, to)
	if allowed.LT(amount) {
		return fmt.Errorf("%w: allowance %s, requested %s", ErrInsufficientAllowance, allowed, amount)
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.setAllowance(from, to, allowed.Sub(amount))

	return nil
}

func (l *MemoryAssetLedger) Transfer(_ context.Context, from, to string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

func (l *MemoryAssetLedger) BalanceOf(_ context.Context, account string) (sdkmath.Uint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(account), nil
}

func (l *MemoryAssetLedger) move(from, to string, amount sdkmath.Uint) error {
	fromBalance := l.balanceOf(from)
	if fromBalance.LT(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientBalance, fromBalance, amount)
	}

	l.balances[from] = fromBalance.Sub(amount)
	l.balances[to] = l.balanceOf(to).Add(amount)
	return nil
}

func (l *MemoryAssetLedger) balanceOf(account string) sdkmath.Uint {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return sdkmath.ZeroUint()
}

func (l *MemoryAssetLedger) allowance(owner, spender string) sdkmath.Uint {
	if allowed, ok := l.allowances[owner][spender]; ok {
		return allowed
	}
	return sdkmath.ZeroUint()
}

func (l *MemoryAssetLedger) setAllowance(owner, spender string, amount sdkmath.Uint) {
	if _, ok := l.allowances[owner]; !ok {
		l.allowances[owner] = make(map[string]sdkmath.Uint)
	}
	l.allowances[owner][spender] = amount
}
