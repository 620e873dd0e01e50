package assetclient

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAssetLedger_TransferFrom(t *testing.T) {
	ctx := t.Context()
	const (
		owner   = "alice"
		custody = "farm"
	)

	setup := func() *MemoryAssetLedger {
		l := NewMemoryAssetLedger("MockDai")
		l.Mint(owner, sdkmath.NewUint(1000))
		return l
	}

	t.Run("without allowance", func(t *testing.T) {
		l := setup()
		err := l.TransferFrom(ctx, owner, custody, sdkmath.NewUint(50))
		require.ErrorIs(t, err, ErrInsufficientAllowance)
		assertBalance(t, l, owner, 1000)
	})
	t.Run("allowance above balance", func(t *testing.T) {
		l := setup()
		l.Approve(owner, custody, sdkmath.NewUint(1_000_000))
		err := l.TransferFrom(ctx, owner, custody, sdkmath.NewUint(1_000_000))
		require.ErrorIs(t, err, ErrInsufficientBalance)
		assertBalance(t, l, owner, 1000)
		assert.True(t, l.Allowance(owner, custody).Equal(sdkmath.NewUint(1_000_000)))
	})
	t.Run("ok consumes allowance", func(t *testing.T) {
		l := setup()
		l.Approve(owner, custody, sdkmath.NewUint(300))
		err := l.TransferFrom(ctx, owner, custody, sdkmath.NewUint(100))
		require.NoError(t, err)

		assertBalance(t, l, owner, 900)
		assertBalance(t, l, custody, 100)
		assert.True(t, l.Allowance(owner, custody).Equal(sdkmath.NewUint(200)))
		assert.True(t, l.TotalSupply().Equal(sdkmath.NewUint(1000)))
	})
}

func TestMemoryAssetLedger_Transfer(t *testing.T) {
	ctx := t.Context()
	l := NewMemoryAssetLedger("MockDai")
	l.Mint("farm", sdkmath.NewUint(10))

	err := l.Transfer(ctx, "farm", "bob", sdkmath.NewUint(11))
	require.ErrorIs(t, err, ErrInsufficientBalance)

	err = l.Transfer(ctx, "farm", "bob", sdkmath.NewUint(10))
	require.NoError(t, err)
	assertBalance(t, l, "farm", 0)
	assertBalance(t, l, "bob", 10)
}

func assertBalance(t *testing.T, l *MemoryAssetLedger, account string, expected uint64) {
	t.Helper()

	balance, err := l.BalanceOf(t.Context(), account)
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewUint(expected).String(), balance.String())
}
