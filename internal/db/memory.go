package db

import (
	"context"
	"sort"
	"sync"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
)

// MemoryDb keeps documents in process memory. Documents are copied on the
// way in and out so callers never share state with the store.
type MemoryDb struct {
	mu          sync.RWMutex
	entries     map[string]model.StakeEntryDocument
	withdrawals map[string]model.YieldWithdrawalDocument
}

func NewMemoryDb() *MemoryDb {
	return &MemoryDb{
		entries:     make(map[string]model.StakeEntryDocument),
		withdrawals: make(map[string]model.YieldWithdrawalDocument),
	}
}

func (m *MemoryDb) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryDb) GetStakeEntry(_ context.Context, participant string) (*model.StakeEntryDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[participant]
	if !ok {
		return nil, &NotFoundError{
			Key:     participant,
			Message: "stake entry not found",
		}
	}
	return &entry, nil
}

func (m *MemoryDb) SaveStakeEntry(_ context.Context, entry *model.StakeEntryDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entry.Participant] = *entry
	return nil
}

func (m *MemoryDb) SaveYieldWithdrawal(_ context.Context, withdrawal *model.YieldWithdrawalDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.withdrawals[withdrawal.ID]; exists {
		return &DuplicateKeyError{
			Key:     withdrawal.ID,
			Message: "yield withdrawal already exists",
		}
	}
	m.withdrawals[withdrawal.ID] = *withdrawal
	return nil
}

func (m *MemoryDb) GetYieldWithdrawals(_ context.Context, participant string) ([]*model.YieldWithdrawalDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	withdrawals := []*model.YieldWithdrawalDocument{}
	for _, w := range m.withdrawals {
		if w.Participant == participant {
			withdrawals = append(withdrawals, &w)
		}
	}
	sort.Slice(withdrawals, func(i, j int) bool {
		if withdrawals[i].WithdrawnAt != withdrawals[j].WithdrawnAt {
			return withdrawals[i].WithdrawnAt < withdrawals[j].WithdrawnAt
		}
		return withdrawals[i].ID < withdrawals[j].ID
	})
	return withdrawals, nil
}
