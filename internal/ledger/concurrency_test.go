package ledger

import (
	"fmt"
	"sync/atomic"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentStakesOnSameParticipant(t *testing.T) {
	const workers = 50

	f := newFixture(t, config.YieldClockReset)
	f.fund("alice", workers)
	ctx := t.Context()

	var failures atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Go(func() {
			if err := f.ledger.Stake(ctx, "alice", sdkmath.NewUint(1)); err != nil {
				failures.Add(1)
			}
		})
	}
	wg.Wait()

	require.Zero(t, failures.Load())
	f.requireEntry(t, "alice", workers, startTime)
	assert.EqualValues(t, workers, f.assetBalance(t, custody))
	assert.Zero(t, f.ledger.locks.size())
}

func TestConcurrentUnstakesNeverOverdraw(t *testing.T) {
	const workers = 20

	f := newFixture(t, config.YieldClockReset)
	f.fund("alice", 10)
	require.NoError(t, f.ledger.Stake(t.Context(), "alice", sdkmath.NewUint(10)))
	ctx := t.Context()

	var succeeded atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Go(func() {
			if err := f.ledger.Unstake(ctx, "alice", sdkmath.NewUint(1)); err == nil {
				succeeded.Add(1)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, 10, succeeded.Load())
	f.requireEntry(t, "alice", 0, startTime)
	assert.EqualValues(t, 10, f.assetBalance(t, "alice"))
	assert.Zero(t, f.assetBalance(t, custody))
}

func TestConcurrentParticipants(t *testing.T) {
	const participants = 25

	f := newFixture(t, config.YieldClockReset)
	for i := 0; i < participants; i++ {
		f.fund(fmt.Sprintf("participant-%d", i), 100)
	}
	ctx := t.Context()

	var wg conc.WaitGroup
	for i := 0; i < participants; i++ {
		participant := fmt.Sprintf("participant-%d", i)
		wg.Go(func() {
			assert.NoError(t, f.ledger.Stake(ctx, participant, sdkmath.NewUint(100)))
			assert.NoError(t, f.ledger.Unstake(ctx, participant, sdkmath.NewUint(40)))
		})
	}
	wg.Wait()

	for i := 0; i < participants; i++ {
		f.requireEntry(t, fmt.Sprintf("participant-%d", i), 60, startTime)
	}
	assert.EqualValues(t, participants*60, f.assetBalance(t, custody))
}
