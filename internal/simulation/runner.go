package simulation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/assetclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clients/rewardclient"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/clock"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

// ErrStoreNotEmpty is returned when the store already holds records of a
// scenario participant. Token balances and the clock start fresh on every
// run, so carried over entries would not be backed by custody.
var ErrStoreNotEmpty = errors.New("store already holds scenario participants")

type StepResult struct {
	Index       int
	Action      string
	Participant string
	// Time is the clock reading after the step ran.
	Time uint64
	// Amount is the minted reward of withdraw-yield or the elapsed time of
	// calculate-yield-time.
	Amount    string
	Err       error
	ErrorCode types.ErrorCode
	// Entry is the participant's entry after the step, if the step has one.
	Entry *ledger.StakeEntry
	// Matched reports whether the outcome is the one the step expected.
	Matched bool
}

type Report struct {
	Steps          []StepResult
	Entries        map[string]ledger.StakeEntry
	AssetBalances  map[string]string
	RewardBalances map[string]string
	CustodyBalance string
	RewardSupply   string
}

// Failed reports whether any step produced an unexpected outcome.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if !s.Matched {
			return true
		}
	}
	return false
}

type Runner struct {
	scenario *Scenario
	asset    *assetclient.MemoryAssetLedger
	reward   *rewardclient.MemoryRewardToken
	clock    *clock.ManualClock
	store    db.DbInterface
	ledger   *ledger.StakingLedger
}

type runnerOptions struct {
	store     db.DbInterface
	publisher queue.EventPublisher
}

type Option func(*runnerOptions)

// WithStore persists stake entries in store instead of process memory.
func WithStore(store db.DbInterface) Option {
	return func(o *runnerOptions) {
		o.store = store
	}
}

// WithPublisher sends the ledger events of the run to publisher.
func WithPublisher(publisher queue.EventPublisher) Option {
	return func(o *runnerOptions) {
		o.publisher = publisher
	}
}

// NewRunner wires a ledger to fresh in-memory token collaborators seeded with
// the scenario participants.
func NewRunner(s *Scenario, opts ...Option) (*Runner, error) {
	options := runnerOptions{
		store:     db.NewMemoryDb(),
		publisher: queue.NewNopPublisher(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	asset := assetclient.NewMemoryAssetLedger("Staking Token")
	reward := rewardclient.NewMemoryRewardToken("Reward Token", s.Admin)
	clk := clock.NewManualClock(s.StartTime)
	custody := s.Ledger.CustodyAccount

	for _, p := range s.Participants {
		asset.Mint(p.Name, parseAmount(p.Balance))
		asset.Approve(p.Name, custody, parseAmount(p.Approve))
	}

	if s.AuthorizeMinter {
		if err := reward.GrantRole(s.Admin, rewardclient.MinterRole, custody); err != nil {
			return nil, err
		}
	}

	store := db.NewDbWithMetrics(options.store)
	l, err := ledger.NewStakingLedger(
		&s.Ledger,
		store,
		assetclient.NewAssetLedgerWithMetrics(asset),
		rewardclient.NewRewardAuthorityWithMetrics(reward.Minter(custody)),
		clk,
		options.publisher,
	)
	if err != nil {
		return nil, err
	}

	return &Runner{
		scenario: s,
		asset:    asset,
		reward:   reward,
		clock:    clk,
		store:    store,
		ledger:   l,
	}, nil
}

func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.checkFreshStore(ctx); err != nil {
		return nil, err
	}

	report := &Report{
		Steps:          make([]StepResult, 0, len(r.scenario.Steps)),
		Entries:        make(map[string]ledger.StakeEntry),
		AssetBalances:  make(map[string]string),
		RewardBalances: make(map[string]string),
	}

	for i, step := range r.scenario.Steps {
		result, err := r.runStep(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}

		event := log.Ctx(ctx).Debug()
		if !result.Matched {
			event = log.Ctx(ctx).Warn()
		}
		event.Int("step", i).
			Str("action", step.Action).
			Str("participant", step.Participant).
			Uint64("time", result.Time).
			Bool("matched", result.Matched).
			Err(result.Err).
			Msg("scenario step executed")

		report.Steps = append(report.Steps, result)
	}

	for _, p := range r.scenario.Participants {
		entry, err := r.ledger.Entry(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		report.Entries[p.Name] = entry

		balance, err := r.asset.BalanceOf(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		report.AssetBalances[p.Name] = balance.String()
		report.RewardBalances[p.Name] = r.reward.BalanceOf(p.Name).String()
	}

	custody, err := r.asset.BalanceOf(ctx, r.ledger.Custody())
	if err != nil {
		return nil, err
	}
	report.CustodyBalance = custody.String()
	report.RewardSupply = r.reward.TotalSupply().String()

	return report, nil
}

func (r *Runner) checkFreshStore(ctx context.Context) error {
	for _, p := range r.scenario.Participants {
		_, err := r.store.GetStakeEntry(ctx, p.Name)
		if err == nil {
			return fmt.Errorf("%w: %s has a stake entry", ErrStoreNotEmpty, p.Name)
		}
		if !db.IsNotFoundError(err) {
			return fmt.Errorf("failed to check stake entry of %s: %w", p.Name, err)
		}

		withdrawals, err := r.store.GetYieldWithdrawals(ctx, p.Name)
		if err != nil {
			return fmt.Errorf("failed to check yield withdrawals of %s: %w", p.Name, err)
		}
		if len(withdrawals) > 0 {
			return fmt.Errorf("%w: %s has yield withdrawals", ErrStoreNotEmpty, p.Name)
		}
	}
	return nil
}

// runStep only returns an error when the step could not be attempted.
// Ledger failures are part of the result.
func (r *Runner) runStep(ctx context.Context, index int, step Step) (StepResult, error) {
	result := StepResult{
		Index:       index,
		Action:      step.Action,
		Participant: step.Participant,
	}
	amount := parseAmount(step.Amount)
	custody := r.ledger.Custody()

	var opErr error
	switch step.Action {
	case ActionStake:
		opErr = r.ledger.Stake(ctx, step.Participant, amount)
	case ActionUnstake:
		opErr = r.ledger.Unstake(ctx, step.Participant, amount)
	case ActionApprove:
		r.asset.Approve(step.Participant, custody, amount)
	case ActionMint:
		r.asset.Mint(step.Participant, amount)
	case ActionAdvance:
		r.clock.Advance(step.Seconds)
	case ActionCalculateYieldTime:
		var elapsed uint64
		elapsed, opErr = r.ledger.CalculateYieldTime(ctx, step.Participant)
		if opErr == nil {
			result.Amount = strconv.FormatUint(elapsed, 10)
		}
	case ActionWithdrawYield:
		var minted sdkmath.Uint
		minted, opErr = r.ledger.WithdrawYield(ctx, step.Participant)
		if opErr == nil {
			result.Amount = minted.String()
		}
	case ActionGrantMinter:
		opErr = r.reward.GrantRole(r.scenario.Admin, rewardclient.MinterRole, custody)
	case ActionRevokeMinter:
		opErr = r.reward.RevokeRole(r.scenario.Admin, rewardclient.MinterRole, custody)
	default:
		return result, fmt.Errorf("unknown action")
	}

	result.Time = r.clock.CurrentTime()
	result.Err = opErr
	result.ErrorCode = errorCode(opErr)
	result.Matched = matches(step, result)

	if step.Participant != "" {
		entry, err := r.ledger.Entry(ctx, step.Participant)
		if err != nil {
			return result, err
		}
		result.Entry = &entry
	}

	return result, nil
}

func errorCode(err error) types.ErrorCode {
	if err == nil {
		return ""
	}
	var ledgerErr *types.Error
	if errors.As(err, &ledgerErr) {
		return ledgerErr.ErrorCode
	}
	// role changes fail outside the ledger
	if errors.Is(err, rewardclient.ErrUnauthorized) {
		return types.AuthorizationDenied
	}
	return types.InternalServiceError
}

func matches(step Step, result StepResult) bool {
	if step.ExpectError != "" {
		return result.Err != nil && result.ErrorCode.String() == step.ExpectError
	}
	if result.Err != nil {
		return false
	}
	if step.ExpectAmount != "" {
		return parseAmount(step.ExpectAmount).Equal(parseAmount(result.Amount))
	}
	return true
}
