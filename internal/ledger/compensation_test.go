package ledger

import (
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/assetclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/rewardclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clock"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/babylonlabs-io/staking-yield-ledger/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ctx passed to collaborators carries the logger, so it is matched loosely
var anyCtx = mock.Anything

func amountOf(expected uint64) interface{} {
	return mock.MatchedBy(func(amount sdkmath.Uint) bool {
		return amount.Equal(sdkmath.NewUint(expected))
	})
}

func entryDoc(balance string, start uint64) interface{} {
	return mock.MatchedBy(func(doc *model.StakeEntryDocument) bool {
		return doc.Participant == "alice" && doc.StakingBalance == balance && doc.StartTime == start
	})
}

func newMockedLedger(
	t *testing.T,
	policy string,
	store db.DbInterface,
	asset assetclient.AssetLedger,
	reward rewardclient.RewardAuthority,
	publisher queue.EventPublisher,
) (*StakingLedger, *clock.ManualClock) {
	t.Helper()

	cfg := config.DefaultLedgerConfig(custody)
	cfg.YieldClockPolicy = policy
	clk := clock.NewManualClock(startTime)

	l, err := NewStakingLedger(cfg, store, asset, reward, clk, publisher)
	require.NoError(t, err)
	return l, clk
}

func TestStake_SaveFailureRefunds(t *testing.T) {
	store := mocks.NewDbInterface(t)
	asset := mocks.NewAssetLedger(t)
	l, _ := newMockedLedger(t, config.YieldClockReset, store, asset, nil, nil)

	store.On("GetStakeEntry", anyCtx, "alice").Return(nil, &db.NotFoundError{Key: "alice", Message: "not found"})
	asset.On("TransferFrom", anyCtx, "alice", custody, amountOf(10)).Return(nil).Once()
	store.On("SaveStakeEntry", anyCtx, entryDoc("10", startTime)).Return(errors.New("write conflict")).Once()
	asset.On("Transfer", anyCtx, custody, "alice", amountOf(10)).Return(nil).Once()

	err := l.Stake(t.Context(), "alice", sdkmath.NewUint(10))
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.InternalServiceError))
}

func TestStake_TransferFailureSkipsSave(t *testing.T) {
	store := mocks.NewDbInterface(t)
	asset := mocks.NewAssetLedger(t)
	l, _ := newMockedLedger(t, config.YieldClockReset, store, asset, nil, nil)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(5), 900), nil)
	asset.On("TransferFrom", anyCtx, "alice", custody, amountOf(10)).Return(assetclient.ErrInsufficientBalance).Once()

	err := l.Stake(t.Context(), "alice", sdkmath.NewUint(10))
	assert.True(t, types.IsErrorCode(err, types.TransferRejected))
	store.AssertNotCalled(t, "SaveStakeEntry", mock.Anything, mock.Anything)
}

func TestStake_ReadFailure(t *testing.T) {
	store := mocks.NewDbInterface(t)
	asset := mocks.NewAssetLedger(t)
	l, _ := newMockedLedger(t, config.YieldClockReset, store, asset, nil, nil)

	store.On("GetStakeEntry", anyCtx, "alice").Return(nil, errors.New("connection reset"))

	err := l.Stake(t.Context(), "alice", sdkmath.NewUint(10))
	assert.True(t, types.IsErrorCode(err, types.InternalServiceError))
}

func TestUnstake_TransferFailureRestoresEntry(t *testing.T) {
	store := mocks.NewDbInterface(t)
	asset := mocks.NewAssetLedger(t)
	l, _ := newMockedLedger(t, config.YieldClockReset, store, asset, nil, nil)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(50), startTime), nil)
	store.On("SaveStakeEntry", anyCtx, entryDoc("40", startTime)).Return(nil).Once()
	asset.On("Transfer", anyCtx, custody, "alice", amountOf(10)).Return(assetclient.ErrInsufficientBalance).Once()
	store.On("SaveStakeEntry", anyCtx, entryDoc("50", startTime)).Return(nil).Once()

	err := l.Unstake(t.Context(), "alice", sdkmath.NewUint(10))
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.TransferRejected))
}

func TestUnstake_SaveFailureSkipsTransfer(t *testing.T) {
	store := mocks.NewDbInterface(t)
	asset := mocks.NewAssetLedger(t)
	l, _ := newMockedLedger(t, config.YieldClockReset, store, asset, nil, nil)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(50), startTime), nil)
	store.On("SaveStakeEntry", anyCtx, entryDoc("0", startTime)).Return(errors.New("timeout")).Once()

	err := l.Unstake(t.Context(), "alice", sdkmath.NewUint(50))
	assert.True(t, types.IsErrorCode(err, types.InternalServiceError))
	asset.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWithdrawYield_MintFailureRestoresClock(t *testing.T) {
	store := mocks.NewDbInterface(t)
	reward := mocks.NewRewardAuthority(t)
	l, clk := newMockedLedger(t, config.YieldClockReset, store, nil, reward, nil)
	now := clk.Advance(100)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(50), startTime), nil)
	store.On("SaveStakeEntry", anyCtx, entryDoc("50", now)).Return(nil).Once()
	reward.On("Mint", anyCtx, "alice", amountOf(100)).Return(errors.New("node unavailable")).Once()
	store.On("SaveStakeEntry", anyCtx, entryDoc("50", startTime)).Return(nil).Once()

	_, err := l.WithdrawYield(t.Context(), "alice")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.InternalServiceError))
	store.AssertNotCalled(t, "SaveYieldWithdrawal", mock.Anything, mock.Anything)
}

func TestWithdrawYield_KeepPolicyNeverWritesEntry(t *testing.T) {
	store := mocks.NewDbInterface(t)
	reward := mocks.NewRewardAuthority(t)
	l, clk := newMockedLedger(t, config.YieldClockKeep, store, nil, reward, nil)
	clk.Advance(100)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(50), startTime), nil)
	reward.On("Mint", anyCtx, "alice", amountOf(100)).Return(rewardclient.ErrUnauthorized).Once()

	_, err := l.WithdrawYield(t.Context(), "alice")
	assert.True(t, types.IsErrorCode(err, types.AuthorizationDenied))
	store.AssertNotCalled(t, "SaveStakeEntry", mock.Anything, mock.Anything)
}

func TestWithdrawYield_RecordFailureKeepsPayout(t *testing.T) {
	store := mocks.NewDbInterface(t)
	reward := mocks.NewRewardAuthority(t)
	l, clk := newMockedLedger(t, config.YieldClockKeep, store, nil, reward, nil)
	clk.Advance(7)

	store.On("GetStakeEntry", anyCtx, "alice").Return(model.NewStakeEntryDocument("alice", sdkmath.NewUint(50), startTime), nil)
	reward.On("Mint", anyCtx, "alice", amountOf(7)).Return(nil).Once()
	store.On("SaveYieldWithdrawal", anyCtx, mock.AnythingOfType("*model.YieldWithdrawalDocument")).
		Return(errors.New("disk full")).Once()

	amount, err := l.WithdrawYield(t.Context(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 7, amount.Uint64())
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	asset := assetclient.NewMemoryAssetLedger("Staking Token")
	asset.Mint("alice", sdkmath.NewUint(10))
	asset.Approve("alice", custody, sdkmath.NewUint(10))

	publisher := mocks.NewEventPublisher(t)
	publisher.On("PushLedgerEvent", anyCtx, mock.Anything).Return(errors.New("channel closed")).Once()

	l, _ := newMockedLedger(t, config.YieldClockReset, db.NewMemoryDb(), asset, nil, publisher)

	require.NoError(t, l.Stake(t.Context(), "alice", sdkmath.NewUint(10)))

	balance, err := l.StakingBalance(t.Context(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 10, balance.Uint64())
}

func TestPublishedEvents(t *testing.T) {
	asset := assetclient.NewMemoryAssetLedger("Staking Token")
	asset.Mint("alice", sdkmath.NewUint(10))
	asset.Approve("alice", custody, sdkmath.NewUint(10))
	reward := rewardclient.NewMemoryRewardToken("Reward Token", admin)
	require.NoError(t, reward.GrantRole(admin, rewardclient.MinterRole, custody))

	publisher := mocks.NewEventPublisher(t)
	l, clk := newMockedLedger(t, config.YieldClockReset, db.NewMemoryDb(), asset, reward.Minter(custody), publisher)

	publisher.On("PushLedgerEvent", anyCtx, &types.LedgerEvent{
		EventType:      types.EventStaked,
		Participant:    "alice",
		Amount:         "10",
		StakingBalance: "10",
		StartTime:      startTime,
		Timestamp:      startTime,
	}).Return(nil).Once()
	publisher.On("PushLedgerEvent", anyCtx, &types.LedgerEvent{
		EventType:      types.EventYieldWithdrawn,
		Participant:    "alice",
		Amount:         "30",
		StakingBalance: "10",
		StartTime:      startTime + 30,
		Timestamp:      startTime + 30,
	}).Return(nil).Once()
	publisher.On("PushLedgerEvent", anyCtx, &types.LedgerEvent{
		EventType:      types.EventUnstaked,
		Participant:    "alice",
		Amount:         "10",
		StakingBalance: "0",
		StartTime:      startTime + 30,
		Timestamp:      startTime + 30,
	}).Return(nil).Once()

	require.NoError(t, l.Stake(t.Context(), "alice", sdkmath.NewUint(10)))
	clk.Advance(30)
	_, err := l.WithdrawYield(t.Context(), "alice")
	require.NoError(t, err)
	require.NoError(t, l.Unstake(t.Context(), "alice", sdkmath.NewUint(10)))
}
