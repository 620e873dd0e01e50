package ledger

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRate(t *testing.T) {
	rate := NewLinearRate(sdkmath.NewUint(3))

	assert.True(t, rate.Reward(0, sdkmath.NewUint(100)).IsZero())
	assert.EqualValues(t, 30, rate.Reward(10, sdkmath.NewUint(100)).Uint64())
	// balance does not matter
	assert.EqualValues(t, 30, rate.Reward(10, sdkmath.NewUint(1)).Uint64())
}

func TestBalanceWeightedRate(t *testing.T) {
	rate := NewBalanceWeightedRate(86400)

	assert.EqualValues(t, 500, rate.Reward(86400, sdkmath.NewUint(500)).Uint64())
	assert.EqualValues(t, 250, rate.Reward(43200, sdkmath.NewUint(500)).Uint64())
	// truncated
	assert.True(t, rate.Reward(100, sdkmath.NewUint(1)).IsZero())
}

func TestNewRewardRate(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		rate, err := NewRewardRate(&config.RewardRateConfig{Type: config.RewardRateLinear, PerUnit: "2"})
		require.NoError(t, err)
		assert.EqualValues(t, 20, rate.Reward(10, sdkmath.ZeroUint()).Uint64())
	})
	t.Run("balance weighted", func(t *testing.T) {
		rate, err := NewRewardRate(&config.RewardRateConfig{Type: config.RewardRateBalanceWeighted, Period: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 50, rate.Reward(5, sdkmath.NewUint(100)).Uint64())
	})
	t.Run("errors", func(t *testing.T) {
		_, err := NewRewardRate(&config.RewardRateConfig{Type: config.RewardRateLinear, PerUnit: "-1"})
		require.Error(t, err)
		_, err = NewRewardRate(&config.RewardRateConfig{Type: config.RewardRateBalanceWeighted})
		require.Error(t, err)
		_, err = NewRewardRate(&config.RewardRateConfig{Type: "exponential"})
		require.Error(t, err)
	})
}

func TestWithdrawYield_BalanceWeighted(t *testing.T) {
	f := newFixture(t, config.YieldClockReset)
	f.ledger.rate = NewBalanceWeightedRate(100)
	f.fund("alice", 1_000)
	require.NoError(t, f.ledger.Stake(t.Context(), "alice", sdkmath.NewUint(1_000)))

	f.clock.Advance(50)
	amount, err := f.ledger.WithdrawYield(t.Context(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 500, amount.Uint64())
}
