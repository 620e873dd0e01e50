package ledger

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
)

// RewardRate converts the time spent staking into a reward amount.
type RewardRate interface {
	Reward(elapsed uint64, stakingBalance sdkmath.Uint) sdkmath.Uint
}

// LinearRate pays a fixed amount per elapsed second regardless of the
// staked balance.
type LinearRate struct {
	perUnit sdkmath.Uint
}

func NewLinearRate(perUnit sdkmath.Uint) *LinearRate {
	return &LinearRate{perUnit: perUnit}
}

func (r *LinearRate) Reward(elapsed uint64, _ sdkmath.Uint) sdkmath.Uint {
	return r.perUnit.MulUint64(elapsed)
}

// BalanceWeightedRate pays balance * elapsed / period, so a full period
// staked earns one reward unit per staked unit. Remainders are truncated.
type BalanceWeightedRate struct {
	period uint64
}

func NewBalanceWeightedRate(period uint64) *BalanceWeightedRate {
	return &BalanceWeightedRate{period: period}
}

func (r *BalanceWeightedRate) Reward(elapsed uint64, stakingBalance sdkmath.Uint) sdkmath.Uint {
	return stakingBalance.MulUint64(elapsed).QuoUint64(r.period)
}

func NewRewardRate(cfg *config.RewardRateConfig) (RewardRate, error) {
	switch cfg.Type {
	case config.RewardRateLinear:
		perUnit, err := sdkmath.ParseUint(cfg.PerUnit)
		if err != nil {
			return nil, fmt.Errorf("invalid reward per unit %q: %w", cfg.PerUnit, err)
		}
		return NewLinearRate(perUnit), nil
	case config.RewardRateBalanceWeighted:
		if cfg.Period == 0 {
			return nil, fmt.Errorf("reward period must be positive")
		}
		return NewBalanceWeightedRate(cfg.Period), nil
	default:
		return nil, fmt.Errorf("unknown reward rate type %q", cfg.Type)
	}
}
