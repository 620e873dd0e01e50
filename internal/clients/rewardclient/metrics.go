package rewardclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
)

type rewardAuthorityWithMetrics struct {
	authority RewardAuthority
}

func NewRewardAuthorityWithMetrics(authority RewardAuthority) RewardAuthority {
	return &rewardAuthorityWithMetrics{authority: authority}
}

func (r *rewardAuthorityWithMetrics) Mint(ctx context.Context, to string, amount sdkmath.Uint) error {
	startTime := time.Now()
	err := r.authority.Mint(ctx, to, amount)
	metrics.RecordRewardClientLatency(time.Since(startTime), "Mint", err != nil)
	return err
}
