package db

import (
	"context"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	/**
	 * GetStakeEntry retrieves the stake entry of a participant.
	 * @param ctx The context
	 * @param participant The participant identity
	 * @return The stake entry or a NotFoundError if the participant never staked
	 */
	GetStakeEntry(ctx context.Context, participant string) (*model.StakeEntryDocument, error)
	/**
	 * SaveStakeEntry inserts or replaces the stake entry of a participant.
	 * @param ctx The context
	 * @param entry The stake entry
	 * @return An error if the operation failed
	 */
	SaveStakeEntry(ctx context.Context, entry *model.StakeEntryDocument) error
	/**
	 * SaveYieldWithdrawal records a reward withdrawal.
	 * @param ctx The context
	 * @param withdrawal The withdrawal record
	 * @return A DuplicateKeyError if a record with the same id exists
	 */
	SaveYieldWithdrawal(ctx context.Context, withdrawal *model.YieldWithdrawalDocument) error
	/**
	 * GetYieldWithdrawals lists the withdrawals of a participant, oldest first.
	 * @param ctx The context
	 * @param participant The participant identity
	 * @return The withdrawal records, empty if there are none
	 */
	GetYieldWithdrawals(ctx context.Context, participant string) ([]*model.YieldWithdrawalDocument, error)
}
