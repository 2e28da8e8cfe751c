package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"songbook/internal/models"
)

// mongoHistoryRepository implements HistoryRepository using MongoDB
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a MongoDB-backed history repository
func NewMongoHistoryRepository(db *models.Database) HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.DB.Collection(models.HistoryCollection),
	}
}

// Insert stores a new history entry and fills in its generated ObjectID.
func (r *mongoHistoryRepository) Insert(ctx context.Context, entry *models.HistoryEntry) error {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return storeErr("insert history entry", err)
	}
	entry.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUsername returns the user's most recent entries, newest first.
func (r *mongoHistoryRepository) FindByUsername(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		return nil, storeErr("find history", fmt.Errorf("limit must be positive, got %d", limit))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, storeErr("find history", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.HistoryEntry{}
	for cursor.Next(ctx) {
		var entry models.HistoryEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, storeErr("find history", err)
		}
		if err := entry.Validate(); err != nil {
			return nil, storeErr("find history", err)
		}
		entries = append(entries, &entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("find history", err)
	}

	return entries, nil
}

// PruneOldest deletes the user's entries beyond the keep newest ones. It
// reads only the _ids past the retention window, so the common case of a
// user under the limit is a single indexed find returning nothing.
func (r *mongoHistoryRepository) PruneOldest(ctx context.Context, username string, keep int) (int64, error) {
	if keep < 0 {
		return 0, storeErr("prune history", fmt.Errorf("keep must be non-negative, got %d", keep))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return 0, storeErr("prune history", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, storeErr("prune history", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return 0, storeErr("prune history", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, storeErr("prune history", err)
	}
	return result.DeletedCount, nil
}
