package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetStakeEntry(ctx context.Context, participant string) (result *model.StakeEntryDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeEntry", func() error {
		result, err = d.db.GetStakeEntry(ctx, participant)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveStakeEntry(ctx context.Context, entry *model.StakeEntryDocument) error {
	return d.run("SaveStakeEntry", func() error {
		return d.db.SaveStakeEntry(ctx, entry)
	})
}

func (d *DbWithMetrics) SaveYieldWithdrawal(ctx context.Context, withdrawal *model.YieldWithdrawalDocument) error {
	return d.run("SaveYieldWithdrawal", func() error {
		return d.db.SaveYieldWithdrawal(ctx, withdrawal)
	})
}

func (d *DbWithMetrics) GetYieldWithdrawals(ctx context.Context, participant string) (result []*model.YieldWithdrawalDocument, err error) {
	//nolint:errcheck
	d.run("GetYieldWithdrawals", func() error {
		result, err = d.db.GetYieldWithdrawals(ctx, participant)
		return err
	})
	return
}

// run records latency of f under method. A not found result counts as a
// successful call.
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	failure := err != nil && !IsNotFoundError(err)
	metrics.RecordDbLatency(duration, method, failure)
	return err
}
