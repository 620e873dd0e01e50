package ledger

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/assetclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clock"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancellableStore rejects writes once the caller's context is done, the way
// a mongo write does.
type cancellableStore struct {
	*db.MemoryDb
}

func (s *cancellableStore) SaveStakeEntry(ctx context.Context, entry *model.StakeEntryDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryDb.SaveStakeEntry(ctx, entry)
}

// cancellingAsset cancels the caller's context in the middle of a transfer.
type cancellingAsset struct {
	*assetclient.MemoryAssetLedger
	cancel context.CancelFunc

	cancelOnTransfer      bool
	cancelAfterPullInward bool
}

func (a *cancellingAsset) TransferFrom(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := a.MemoryAssetLedger.TransferFrom(ctx, from, to, amount)
	if a.cancelAfterPullInward {
		a.cancelAfterPullInward = false
		a.cancel()
	}
	return err
}

func (a *cancellingAsset) Transfer(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	if a.cancelOnTransfer {
		a.cancelOnTransfer = false
		a.cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.MemoryAssetLedger.Transfer(ctx, from, to, amount)
}

type cancellingMinter struct {
	cancel context.CancelFunc
}

func (m *cancellingMinter) Mint(ctx context.Context, _ string, _ sdkmath.Uint) error {
	m.cancel()
	return ctx.Err()
}

type cancellationFixture struct {
	ledger *StakingLedger
	asset  *cancellingAsset
	clock  *clock.ManualClock
	ctx    context.Context
}

func newCancellationFixture(t *testing.T) *cancellationFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())
	t.Cleanup(cancel)

	asset := &cancellingAsset{
		MemoryAssetLedger: assetclient.NewMemoryAssetLedger("Staking Token"),
		cancel:            cancel,
	}
	asset.Mint("alice", sdkmath.NewUint(100))
	asset.Approve("alice", custody, sdkmath.NewUint(100))

	clk := clock.NewManualClock(startTime)
	l, err := NewStakingLedger(
		config.DefaultLedgerConfig(custody),
		&cancellableStore{MemoryDb: db.NewMemoryDb()},
		asset,
		&cancellingMinter{cancel: cancel},
		clk,
		nil,
	)
	require.NoError(t, err)

	return &cancellationFixture{ledger: l, asset: asset, clock: clk, ctx: ctx}
}

func (f *cancellationFixture) balance(t *testing.T, account string) uint64 {
	t.Helper()
	balance, err := f.asset.BalanceOf(t.Context(), account)
	require.NoError(t, err)
	return balance.Uint64()
}

func (f *cancellationFixture) requireEntry(t *testing.T, balance, start uint64) {
	t.Helper()
	entry, err := f.ledger.Entry(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, balance, entry.StakingBalance.Uint64())
	assert.Equal(t, start, entry.StartTime)
}

func TestCompensation_CancelledContext(t *testing.T) {
	t.Run("unstake restores the entry", func(t *testing.T) {
		f := newCancellationFixture(t)
		require.NoError(t, f.ledger.Stake(f.ctx, "alice", sdkmath.NewUint(100)))

		f.asset.cancelOnTransfer = true
		err := f.ledger.Unstake(f.ctx, "alice", sdkmath.NewUint(100))
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.TransferRejected))
		assert.ErrorIs(t, err, context.Canceled)

		f.requireEntry(t, 100, startTime)
		assert.Equal(t, uint64(100), f.balance(t, custody))
		assert.Zero(t, f.balance(t, "alice"))
	})

	t.Run("stake refunds the participant", func(t *testing.T) {
		f := newCancellationFixture(t)

		f.asset.cancelAfterPullInward = true
		err := f.ledger.Stake(f.ctx, "alice", sdkmath.NewUint(100))
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.InternalServiceError))

		f.requireEntry(t, 0, 0)
		assert.Zero(t, f.balance(t, custody))
		assert.Equal(t, uint64(100), f.balance(t, "alice"))
	})

	t.Run("withdraw restores the start time", func(t *testing.T) {
		f := newCancellationFixture(t)
		require.NoError(t, f.ledger.Stake(f.ctx, "alice", sdkmath.NewUint(100)))
		f.clock.Advance(50)

		_, err := f.ledger.WithdrawYield(f.ctx, "alice")
		require.Error(t, err)

		f.requireEntry(t, 100, startTime)
		elapsed, err := f.ledger.CalculateYieldTime(t.Context(), "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(50), elapsed)
	})
}
