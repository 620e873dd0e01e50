package ledger

import (
	"context"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

// Stake pulls amount from the participant into custody and adds it to the
// participant's staking balance. The yield clock starts only when the
// participant was not staking before.
func (l *StakingLedger) Stake(ctx context.Context, participant string, amount sdkmath.Uint) (err error) {
	done := metrics.StartLedgerOperationTimer(opStake)
	defer func() { done(err) }()

	if amount.IsZero() {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.InvalidAmount, "cannot stake zero tokens")
	}

	unlock := l.locks.lock(participant)
	defer unlock()

	entry, err := l.loadEntry(ctx, participant)
	if err != nil {
		return err
	}

	if err := l.asset.TransferFrom(ctx, participant, l.custody, amount); err != nil {
		return types.NewError(
			http.StatusUnprocessableEntity,
			types.TransferRejected,
			fmt.Errorf("failed to transfer %s from %s into custody: %w", amount, participant, err),
		)
	}

	now := l.clock.CurrentTime()
	next := entry
	next.StakingBalance = entry.StakingBalance.Add(amount)
	if !entry.IsStaking() {
		next.StartTime = now
	}

	if err := l.saveEntry(ctx, next); err != nil {
		l.refund(ctx, opStake, participant, amount)
		return types.NewInternalServiceError(
			fmt.Errorf("failed to save stake entry of %s: %w", participant, err),
		)
	}

	log.Ctx(ctx).Info().
		Str("participant", participant).
		Str("amount", amount.String()).
		Str("staking_balance", next.StakingBalance.String()).
		Uint64("start_time", next.StartTime).
		Msg("tokens staked")

	l.publish(ctx, types.EventStaked, next, amount, now)
	return nil
}

// Unstake returns amount from custody to the participant. Unstaking the
// whole balance ends the staking period.
func (l *StakingLedger) Unstake(ctx context.Context, participant string, amount sdkmath.Uint) (err error) {
	done := metrics.StartLedgerOperationTimer(opUnstake)
	defer func() { done(err) }()

	if amount.IsZero() {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.InvalidAmount, "cannot unstake zero tokens")
	}

	unlock := l.locks.lock(participant)
	defer unlock()

	entry, err := l.loadEntry(ctx, participant)
	if err != nil {
		return err
	}

	if amount.GT(entry.StakingBalance) {
		return types.NewError(
			http.StatusBadRequest,
			types.InsufficientStake,
			fmt.Errorf("unstake amount %s exceeds staking balance %s of %s", amount, entry.StakingBalance, participant),
		)
	}

	next := entry
	next.StakingBalance = entry.StakingBalance.Sub(amount)

	if err := l.saveEntry(ctx, next); err != nil {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to save stake entry of %s: %w", participant, err),
		)
	}

	if err := l.asset.Transfer(ctx, l.custody, participant, amount); err != nil {
		l.restoreEntry(ctx, opUnstake, entry)
		return types.NewError(
			http.StatusUnprocessableEntity,
			types.TransferRejected,
			fmt.Errorf("failed to return %s from custody to %s: %w", amount, participant, err),
		)
	}

	log.Ctx(ctx).Info().
		Str("participant", participant).
		Str("amount", amount.String()).
		Str("staking_balance", next.StakingBalance.String()).
		Bool("is_staking", next.IsStaking()).
		Msg("tokens unstaked")

	l.publish(ctx, types.EventUnstaked, next, amount, l.clock.CurrentTime())
	return nil
}
