package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the catalog.
const (
	SongsCollection   = "songs"
	HistoryCollection = "history"
)

// Database represents the database connection
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase connects to MongoDB and verifies the connection with a ping.
// A CLI invocation is short-lived, so timeouts are kept tight rather than
// letting a bad PROJECT_DB_URL hang the command.
func NewDatabase(ctx context.Context, mongoURL, dbName string) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &Database{
		Client: client,
		DB:     client.Database(dbName),
	}, nil
}

// Close closes the database connection
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// CreateIndexes creates the indexes both collections rely on. CreateMany is
// idempotent for identical definitions, so this is safe to run on every
// startup.
func (d *Database) CreateIndexes(ctx context.Context) error {
	songIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "artist", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "username", Value: 1},
				{Key: "title", Value: 1},
				{Key: "artist", Value: 1},
			},
		},
	}

	if _, err := d.DB.Collection(SongsCollection).Indexes().CreateMany(ctx, songIndexes); err != nil {
		return err
	}

	historyIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "username", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "username", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	_, err := d.DB.Collection(HistoryCollection).Indexes().CreateMany(ctx, historyIndexes)
	return err
}
