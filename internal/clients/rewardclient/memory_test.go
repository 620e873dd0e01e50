package rewardclient

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRewardToken_Roles(t *testing.T) {
	const (
		owner = "owner"
		farm  = "farm"
	)
	token := NewMemoryRewardToken("HWToken", owner)

	t.Run("non admin cannot grant", func(t *testing.T) {
		err := token.GrantRole(farm, MinterRole, farm)
		require.ErrorIs(t, err, ErrUnauthorized)
		assert.False(t, token.HasRole(MinterRole, farm))
	})
	t.Run("should grant minter role", func(t *testing.T) {
		err := token.GrantRole(owner, MinterRole, farm)
		require.NoError(t, err)
		assert.True(t, token.HasRole(MinterRole, farm))
	})
	t.Run("revoke", func(t *testing.T) {
		err := token.RevokeRole(owner, MinterRole, farm)
		require.NoError(t, err)
		assert.False(t, token.HasRole(MinterRole, farm))
	})
}

func TestMemoryRewardToken_Mint(t *testing.T) {
	ctx := t.Context()
	token := NewMemoryRewardToken("HWToken", "owner")
	authority := token.Minter("farm")

	err := authority.Mint(ctx, "charles", sdkmath.NewUint(5))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, token.TotalSupply().IsZero())

	require.NoError(t, token.GrantRole("owner", MinterRole, "farm"))

	err = authority.Mint(ctx, "charles", sdkmath.NewUint(5))
	require.NoError(t, err)
	assert.Equal(t, "5", token.BalanceOf("charles").String())
	assert.Equal(t, "5", token.TotalSupply().String())
}
