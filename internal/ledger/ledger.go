package ledger

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/assetclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/rewardclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clock"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

const (
	opStake              = "stake"
	opUnstake            = "unstake"
	opCalculateYieldTime = "calculate_yield_time"
	opWithdrawYield      = "withdraw_yield"
)

// compensationTimeout bounds a rollback, which must not inherit the
// cancellation of the operation it undoes.
const compensationTimeout = 30 * time.Second

// StakeEntry is the per participant staking record. A participant that
// never staked has the zero entry.
type StakeEntry struct {
	Participant    string
	StakingBalance sdkmath.Uint
	// StartTime is the clock reading when the current staking period began.
	// It is only meaningful while the participant is staking.
	StartTime uint64
}

func (e StakeEntry) IsStaking() bool {
	return !e.StakingBalance.IsZero()
}

func (e StakeEntry) State() types.StakingState {
	if e.IsStaking() {
		return types.StateStaking
	}
	return types.StateNotStaking
}

func (e StakeEntry) toDocument() *model.StakeEntryDocument {
	return model.NewStakeEntryDocument(e.Participant, e.StakingBalance, e.StartTime)
}

func emptyEntry(participant string) StakeEntry {
	return StakeEntry{Participant: participant, StakingBalance: sdkmath.ZeroUint()}
}

// StakingLedger holds participants' staked tokens in custody and mints
// rewards proportional to the time they stayed staked.
type StakingLedger struct {
	custody         string
	resetYieldClock bool
	rate            RewardRate

	db        db.DbInterface
	asset     assetclient.AssetLedger
	reward    rewardclient.RewardAuthority
	clock     clock.TimeSource
	publisher queue.EventPublisher

	locks *entryLocks
}

func NewStakingLedger(
	cfg *config.LedgerConfig,
	store db.DbInterface,
	asset assetclient.AssetLedger,
	reward rewardclient.RewardAuthority,
	timeSource clock.TimeSource,
	publisher queue.EventPublisher,
) (*StakingLedger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger config: %w", err)
	}
	rate, err := NewRewardRate(&cfg.RewardRate)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = queue.NewNopPublisher()
	}

	return &StakingLedger{
		custody:         cfg.CustodyAccount,
		resetYieldClock: cfg.YieldClockPolicy == config.YieldClockReset,
		rate:            rate,
		db:              store,
		asset:           asset,
		reward:          reward,
		clock:           timeSource,
		publisher:       publisher,
		locks:           newEntryLocks(),
	}, nil
}

// Custody returns the account holding all staked tokens.
func (l *StakingLedger) Custody() string {
	return l.custody
}

// Entry returns the stake entry of a participant, the zero entry if the
// participant never staked.
func (l *StakingLedger) Entry(ctx context.Context, participant string) (StakeEntry, error) {
	unlock := l.locks.lock(participant)
	defer unlock()

	return l.loadEntry(ctx, participant)
}

func (l *StakingLedger) StakingBalance(ctx context.Context, participant string) (sdkmath.Uint, error) {
	entry, err := l.Entry(ctx, participant)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	return entry.StakingBalance, nil
}

func (l *StakingLedger) IsStaking(ctx context.Context, participant string) (bool, error) {
	entry, err := l.Entry(ctx, participant)
	if err != nil {
		return false, err
	}
	return entry.IsStaking(), nil
}

func (l *StakingLedger) StartTime(ctx context.Context, participant string) (uint64, error) {
	entry, err := l.Entry(ctx, participant)
	if err != nil {
		return 0, err
	}
	return entry.StartTime, nil
}

func (l *StakingLedger) loadEntry(ctx context.Context, participant string) (StakeEntry, error) {
	doc, err := l.db.GetStakeEntry(ctx, participant)
	if err != nil {
		if db.IsNotFoundError(err) {
			return emptyEntry(participant), nil
		}
		return StakeEntry{}, types.NewInternalServiceError(
			fmt.Errorf("failed to get stake entry of %s: %w", participant, err),
		)
	}

	balance, err := doc.Balance()
	if err != nil {
		return StakeEntry{}, types.NewInternalServiceError(
			fmt.Errorf("corrupted staking balance of %s: %w", participant, err),
		)
	}

	return StakeEntry{
		Participant:    participant,
		StakingBalance: balance,
		StartTime:      doc.StartTime,
	}, nil
}

func (l *StakingLedger) saveEntry(ctx context.Context, entry StakeEntry) error {
	return l.db.SaveStakeEntry(ctx, entry.toDocument())
}

func compensationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
}

// restoreEntry puts back the entry as it was before a failed operation.
func (l *StakingLedger) restoreEntry(ctx context.Context, operation string, prev StakeEntry) {
	ctx, cancel := compensationContext(ctx)
	defer cancel()

	if err := l.saveEntry(ctx, prev); err != nil {
		metrics.IncCompensationFailures(operation)
		log.Ctx(ctx).Error().Err(err).
			Str("participant", prev.Participant).
			Str("operation", operation).
			Str("staking_balance", prev.StakingBalance.String()).
			Uint64("start_time", prev.StartTime).
			Msg("failed to restore stake entry")
	}
}

// refund returns tokens already pulled into custody to the participant.
func (l *StakingLedger) refund(ctx context.Context, operation, participant string, amount sdkmath.Uint) {
	ctx, cancel := compensationContext(ctx)
	defer cancel()

	if err := l.asset.Transfer(ctx, l.custody, participant, amount); err != nil {
		metrics.IncCompensationFailures(operation)
		log.Ctx(ctx).Error().Err(err).
			Str("participant", participant).
			Str("operation", operation).
			Str("amount", amount.String()).
			Msg("failed to refund participant")
	}
}

func (l *StakingLedger) publish(
	ctx context.Context, eventType types.LedgerEventType, entry StakeEntry, amount sdkmath.Uint, now uint64,
) {
	ev := &types.LedgerEvent{
		EventType:      eventType,
		Participant:    entry.Participant,
		Amount:         amount.String(),
		StakingBalance: entry.StakingBalance.String(),
		StartTime:      entry.StartTime,
		Timestamp:      now,
	}
	if err := l.publisher.PushLedgerEvent(ctx, ev); err != nil {
		metrics.RecordQueueSendError()
		log.Ctx(ctx).Error().Err(err).
			Str("participant", entry.Participant).
			Str("event_type", eventType.String()).
			Msg("failed to publish ledger event")
	}
}
