package config

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

const (
	YieldClockReset = "reset"
	YieldClockKeep  = "keep"

	RewardRateLinear          = "linear"
	RewardRateBalanceWeighted = "balance-weighted"

	defaultRewardPerUnit = "1"
	// one day in seconds
	defaultRewardPeriod = 86400
)

type LedgerConfig struct {
	// CustodyAccount is the AssetLedger account holding staked funds. It is
	// also the identity presented to the RewardAuthority when minting.
	CustodyAccount   string           `mapstructure:"custody-account"`
	YieldClockPolicy string           `mapstructure:"yield-clock-policy"`
	RewardRate       RewardRateConfig `mapstructure:"reward-rate"`
}

type RewardRateConfig struct {
	Type string `mapstructure:"type"`
	// PerUnit is a decimal amount of reward minted per elapsed second (linear).
	PerUnit string `mapstructure:"per-unit"`
	// Period is the number of seconds over which one unit of stake earns one
	// unit of reward (balance-weighted).
	Period uint64 `mapstructure:"period"`
}

func DefaultLedgerConfig(custodyAccount string) *LedgerConfig {
	return &LedgerConfig{
		CustodyAccount:   custodyAccount,
		YieldClockPolicy: YieldClockReset,
		RewardRate: RewardRateConfig{
			Type:    RewardRateLinear,
			PerUnit: defaultRewardPerUnit,
			Period:  defaultRewardPeriod,
		},
	}
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.CustodyAccount == "" {
		return errors.New("ledger custody-account is required")
	}

	switch cfg.YieldClockPolicy {
	case "":
		cfg.YieldClockPolicy = YieldClockReset
	case YieldClockReset, YieldClockKeep:
	default:
		return fmt.Errorf("invalid yield-clock-policy %q, should be one of {%s, %s}",
			cfg.YieldClockPolicy, YieldClockReset, YieldClockKeep)
	}

	return cfg.RewardRate.Validate()
}

func (cfg *RewardRateConfig) Validate() error {
	if cfg.Type == "" {
		cfg.Type = RewardRateLinear
	}
	if cfg.PerUnit == "" {
		cfg.PerUnit = defaultRewardPerUnit
	}
	if cfg.Period == 0 {
		cfg.Period = defaultRewardPeriod
	}

	switch cfg.Type {
	case RewardRateLinear:
		if _, err := sdkmath.ParseUint(cfg.PerUnit); err != nil {
			return fmt.Errorf("invalid reward-rate per-unit %q: %w", cfg.PerUnit, err)
		}
	case RewardRateBalanceWeighted:
	default:
		return fmt.Errorf("invalid reward-rate type %q, should be one of {%s, %s}",
			cfg.Type, RewardRateLinear, RewardRateBalanceWeighted)
	}

	return nil
}
