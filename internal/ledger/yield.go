package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/rewardclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// YieldWithdrawal is a reward payout that was minted to a participant.
type YieldWithdrawal struct {
	ID          string
	Participant string
	Amount      sdkmath.Uint
	ElapsedTime uint64
	WithdrawnAt uint64
}

// CalculateYieldTime returns the seconds elapsed since the participant's
// current staking period began.
func (l *StakingLedger) CalculateYieldTime(ctx context.Context, participant string) (elapsed uint64, err error) {
	done := metrics.StartLedgerOperationTimer(opCalculateYieldTime)
	defer func() { done(err) }()

	unlock := l.locks.lock(participant)
	defer unlock()

	entry, err := l.loadEntry(ctx, participant)
	if err != nil {
		return 0, err
	}

	return l.yieldTime(ctx, entry, l.clock.CurrentTime())
}

func (l *StakingLedger) yieldTime(ctx context.Context, entry StakeEntry, now uint64) (uint64, error) {
	if !entry.IsStaking() {
		return 0, types.NewErrorWithMsg(
			http.StatusBadRequest,
			types.NotStaking,
			fmt.Sprintf("%s is not staking", entry.Participant),
		)
	}

	if now < entry.StartTime {
		log.Ctx(ctx).Warn().
			Str("participant", entry.Participant).
			Uint64("start_time", entry.StartTime).
			Uint64("now", now).
			Msg("clock is behind the staking start time")
		return 0, nil
	}
	return now - entry.StartTime, nil
}

// WithdrawYield mints the reward accrued since the staking period began to
// the participant and returns the minted amount. Under the reset policy the
// participant's yield clock restarts at the time of withdrawal.
func (l *StakingLedger) WithdrawYield(ctx context.Context, participant string) (amount sdkmath.Uint, err error) {
	done := metrics.StartLedgerOperationTimer(opWithdrawYield)
	defer func() { done(err) }()

	unlock := l.locks.lock(participant)
	defer unlock()

	entry, err := l.loadEntry(ctx, participant)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}

	now := l.clock.CurrentTime()
	elapsed, err := l.yieldTime(ctx, entry, now)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	amount = l.rate.Reward(elapsed, entry.StakingBalance)

	next := entry
	if l.resetYieldClock {
		next.StartTime = now
		if err := l.saveEntry(ctx, next); err != nil {
			return sdkmath.ZeroUint(), types.NewInternalServiceError(
				fmt.Errorf("failed to reset yield clock of %s: %w", participant, err),
			)
		}
	}

	if err := l.reward.Mint(ctx, participant, amount); err != nil {
		if l.resetYieldClock {
			l.restoreEntry(ctx, opWithdrawYield, entry)
		}
		if errors.Is(err, rewardclient.ErrUnauthorized) {
			return sdkmath.ZeroUint(), types.NewError(
				http.StatusForbidden,
				types.AuthorizationDenied,
				fmt.Errorf("ledger is not allowed to mint rewards: %w", err),
			)
		}
		return sdkmath.ZeroUint(), types.NewInternalServiceError(
			fmt.Errorf("failed to mint %s to %s: %w", amount, participant, err),
		)
	}

	l.recordWithdrawal(ctx, participant, amount, elapsed, now)

	log.Ctx(ctx).Info().
		Str("participant", participant).
		Str("amount", amount.String()).
		Uint64("elapsed_time", elapsed).
		Uint64("start_time", next.StartTime).
		Msg("yield withdrawn")

	l.publish(ctx, types.EventYieldWithdrawn, next, amount, now)
	return amount, nil
}

func (l *StakingLedger) recordWithdrawal(
	ctx context.Context, participant string, amount sdkmath.Uint, elapsed, now uint64,
) {
	// v7 ids sort in creation order, which orders withdrawals sharing a timestamp
	id, err := uuid.NewV7()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("participant", participant).
			Msg("failed to generate yield withdrawal id")
		return
	}
	doc := &model.YieldWithdrawalDocument{
		ID:          id.String(),
		Participant: participant,
		Amount:      amount.String(),
		ElapsedTime: elapsed,
		WithdrawnAt: now,
	}
	if err := l.db.SaveYieldWithdrawal(ctx, doc); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("participant", participant).
			Str("withdrawal_id", doc.ID).
			Str("amount", doc.Amount).
			Msg("failed to record yield withdrawal")
	}
}

// YieldWithdrawals lists the participant's past withdrawals, oldest first.
func (l *StakingLedger) YieldWithdrawals(ctx context.Context, participant string) ([]YieldWithdrawal, error) {
	docs, err := l.db.GetYieldWithdrawals(ctx, participant)
	if err != nil {
		return nil, types.NewInternalServiceError(
			fmt.Errorf("failed to get yield withdrawals of %s: %w", participant, err),
		)
	}

	withdrawals := make([]YieldWithdrawal, 0, len(docs))
	for _, doc := range docs {
		amount, err := sdkmath.ParseUint(doc.Amount)
		if err != nil {
			return nil, types.NewInternalServiceError(
				fmt.Errorf("corrupted yield withdrawal %s: %w", doc.ID, err),
			)
		}
		withdrawals = append(withdrawals, YieldWithdrawal{
			ID:          doc.ID,
			Participant: doc.Participant,
			Amount:      amount,
			ElapsedTime: doc.ElapsedTime,
			WithdrawnAt: doc.WithdrawnAt,
		})
	}
	return withdrawals, nil
}
