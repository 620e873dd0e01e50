package rewardclient

import (
	"context"
	"errors"

	sdkmath "cosmossdk.io/math"
)

var ErrUnauthorized = errors.New("caller is not authorized to mint")

// RewardAuthority issues reward tokens. Whether the caller may mint is
// decided by the authority, never by the ledger.
//
//go:generate mockery --name=RewardAuthority --output=../../../tests/mocks --outpkg=mocks --filename=mock_reward_authority.go
type RewardAuthority interface {
	Mint(ctx context.Context, to string, amount sdkmath.Uint) error
}
