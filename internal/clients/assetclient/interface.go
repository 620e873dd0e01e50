package assetclient

import (
	"context"
	"errors"

	sdkmath "cosmossdk.io/math"
)

var (
	ErrInsufficientAllowance = errors.New("transfer amount exceeds allowance")
	ErrInsufficientBalance   = errors.New("transfer amount exceeds balance")
)

// AssetLedger moves the staked asset. A returned error means no value moved.
//
//go:generate mockery --name=AssetLedger --output=../../../tests/mocks --outpkg=mocks --filename=mock_asset_ledger.go
type AssetLedger interface {
	// TransferFrom pulls amount from an account that has approved the
	// receiving account to spend on its behalf.
	TransferFrom(ctx context.Context, from, to string, amount sdkmath.Uint) error
	// Transfer pushes amount out of an account the caller controls.
	Transfer(ctx context.Context, from, to string, amount sdkmath.Uint) error
	BalanceOf(ctx context.Context, account string) (sdkmath.Uint, error)
}
