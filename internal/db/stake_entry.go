package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetStakeEntry(ctx context.Context, participant string) (*model.StakeEntryDocument, error) {
	var entry model.StakeEntryDocument
	err := db.collection(model.StakeEntryCollection).
		FindOne(ctx, bson.M{"_id": participant}).
		Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     participant,
				Message: "stake entry not found",
			}
		}
		return nil, err
	}

	return &entry, nil
}

func (db *Database) SaveStakeEntry(ctx context.Context, entry *model.StakeEntryDocument) error {
	opts := options.Replace().SetUpsert(true)
	_, err := db.collection(model.StakeEntryCollection).
		ReplaceOne(ctx, bson.M{"_id": entry.Participant}, entry, opts)
	return err
}
