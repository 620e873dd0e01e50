package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveYieldWithdrawal(ctx context.Context, withdrawal *model.YieldWithdrawalDocument) error {
	_, err := db.collection(model.YieldWithdrawalCollection).
		InsertOne(ctx, withdrawal)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     withdrawal.ID,
						Message: "yield withdrawal already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetYieldWithdrawals(ctx context.Context, participant string) ([]*model.YieldWithdrawalDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "withdrawn_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := db.collection(model.YieldWithdrawalCollection).
		Find(ctx, bson.M{"participant": participant}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	withdrawals := []*model.YieldWithdrawalDocument{}
	if err := cursor.All(ctx, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
