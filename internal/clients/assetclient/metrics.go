package assetclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
)

type assetLedgerWithMetrics struct {
	asset AssetLedger
}

func NewAssetLedgerWithMetrics(asset AssetLedger) AssetLedger {
	return &assetLedgerWithMetrics{asset: asset}
}

func (a *assetLedgerWithMetrics) TransferFrom(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	_, err := runAssetMethodWithMetrics("TransferFrom", func() (struct{}, error) {
		return struct{}{}, a.asset.TransferFrom(ctx, from, to, amount)
	})
	return err
}

func (a *assetLedgerWithMetrics) Transfer(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	_, err := runAssetMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, a.asset.Transfer(ctx, from, to, amount)
	})
	return err
}

func (a *assetLedgerWithMetrics) BalanceOf(ctx context.Context, account string) (sdkmath.Uint, error) {
	return runAssetMethodWithMetrics("BalanceOf", func() (sdkmath.Uint, error) {
		return a.asset.BalanceOf(ctx, account)
	})
}

func runAssetMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordAssetClientLatency(duration, method, err != nil)
	return v, err
}
