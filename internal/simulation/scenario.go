package simulation

import (
	"errors"
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/spf13/viper"
)

const (
	ActionStake              = "stake"
	ActionUnstake            = "unstake"
	ActionApprove            = "approve"
	ActionMint               = "mint"
	ActionAdvance            = "advance"
	ActionCalculateYieldTime = "calculate-yield-time"
	ActionWithdrawYield      = "withdraw-yield"
	ActionGrantMinter        = "grant-minter"
	ActionRevokeMinter       = "revoke-minter"

	defaultCustody = "staking-ledger"
	defaultAdmin   = "reward-admin"
)

// Scenario is a scripted run of the ledger against in-memory collaborators.
type Scenario struct {
	StartTime uint64 `mapstructure:"start-time"`
	// Admin holds the reward token admin role and grants or revokes minting.
	Admin string `mapstructure:"admin"`
	// AuthorizeMinter grants the custody account the minter role before the
	// first step.
	AuthorizeMinter bool                `mapstructure:"authorize-minter"`
	Ledger          config.LedgerConfig `mapstructure:"ledger"`
	Participants    []Participant       `mapstructure:"participants"`
	Steps           []Step              `mapstructure:"steps"`
}

type Participant struct {
	Name    string `mapstructure:"name"`
	Balance string `mapstructure:"balance"`
	// Approve is the allowance granted to the ledger custody account.
	Approve string `mapstructure:"approve"`
}

type Step struct {
	Action      string `mapstructure:"action"`
	Participant string `mapstructure:"participant"`
	Amount      string `mapstructure:"amount"`
	Seconds     uint64 `mapstructure:"seconds"`
	// ExpectError is the error code the step must fail with. Empty means the
	// step must succeed.
	ExpectError string `mapstructure:"expect-error"`
	// ExpectAmount is checked against the minted amount of withdraw-yield
	// and the elapsed time of calculate-yield-time.
	ExpectAmount string `mapstructure:"expect-amount"`
}

func LoadScenario(path string) (*Scenario, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Scenario) Validate() error {
	if s.Admin == "" {
		s.Admin = defaultAdmin
	}
	if s.Ledger.CustodyAccount == "" {
		s.Ledger.CustodyAccount = defaultCustody
	}
	if err := s.Ledger.Validate(); err != nil {
		return err
	}

	if len(s.Steps) == 0 {
		return errors.New("scenario has no steps")
	}

	known := make(map[string]struct{}, len(s.Participants))
	for i, p := range s.Participants {
		if p.Name == "" {
			return fmt.Errorf("participant %d has no name", i)
		}
		if _, ok := known[p.Name]; ok {
			return fmt.Errorf("duplicate participant %s", p.Name)
		}
		if err := validateAmount(p.Balance, true); err != nil {
			return fmt.Errorf("participant %s balance: %w", p.Name, err)
		}
		if err := validateAmount(p.Approve, true); err != nil {
			return fmt.Errorf("participant %s approve: %w", p.Name, err)
		}
		known[p.Name] = struct{}{}
	}

	for i, step := range s.Steps {
		if err := step.validate(known); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}

	return nil
}

// Namespace prefixes every participant name with runID, so that runs sharing
// a persistent store do not see each other's entries.
func (s *Scenario) Namespace(runID string) {
	if runID == "" {
		return
	}
	qualify := func(name string) string {
		if name == "" {
			return name
		}
		return runID + "." + name
	}
	for i := range s.Participants {
		s.Participants[i].Name = qualify(s.Participants[i].Name)
	}
	for i := range s.Steps {
		s.Steps[i].Participant = qualify(s.Steps[i].Participant)
	}
}

func (s Step) validate(participants map[string]struct{}) error {
	switch s.Action {
	case ActionAdvance:
		if s.Seconds == 0 {
			return errors.New("seconds must be positive")
		}
		return nil
	case ActionGrantMinter, ActionRevokeMinter:
		return nil
	case ActionStake, ActionUnstake, ActionApprove, ActionMint:
		if err := validateAmount(s.Amount, false); err != nil {
			return err
		}
	case ActionCalculateYieldTime, ActionWithdrawYield:
		if err := validateAmount(s.ExpectAmount, true); err != nil {
			return fmt.Errorf("expect-amount: %w", err)
		}
	default:
		return fmt.Errorf("unknown action")
	}

	if _, ok := participants[s.Participant]; !ok {
		return fmt.Errorf("unknown participant %q", s.Participant)
	}
	return nil
}

// validateAmount accepts decimal amounts, zero included, so that rejected
// stakes of zero can be scripted.
func validateAmount(amount string, optional bool) error {
	if amount == "" {
		if optional {
			return nil
		}
		return errors.New("amount is required")
	}
	if _, err := sdkmath.ParseUint(amount); err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return nil
}

func parseAmount(amount string) sdkmath.Uint {
	if amount == "" {
		return sdkmath.ZeroUint()
	}
	// validated on load
	return sdkmath.NewUintFromString(amount)
}
