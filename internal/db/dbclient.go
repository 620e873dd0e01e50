package db

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Database struct {
	dbName string
	client *mongo.Client
}

// New connects to MongoDB, retrying the initial connect and ping according
// to the db config.
func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)

	connect := func() (*mongo.Client, error) {
		client, err := mongo.Connect(ctx, clientOps)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return client, nil
	}

	// zero attempts means retry forever in retry-go
	attempts := max(cfg.ConnectRetries, 1)
	client, err := retry.DoWithData(connect,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.ConnectRetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Uint("attempt", n+1).
				Uint("max_attempts", attempts).
				Err(err).
				Msg("failed to connect to db, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Database{
		dbName: cfg.DbName,
		client: client,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}
