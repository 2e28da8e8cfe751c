package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"songbook/internal/models"
)

// mongoSongRepository implements SongRepository using MongoDB
type mongoSongRepository struct {
	collection *mongo.Collection
}

// NewMongoSongRepository creates a MongoDB-backed song repository
func NewMongoSongRepository(db *models.Database) SongRepository {
	return &mongoSongRepository{
		collection: db.DB.Collection(models.SongsCollection),
	}
}

// Insert stores a new song and fills in its generated ObjectID.
func (r *mongoSongRepository) Insert(ctx context.Context, song *models.Song) error {
	result, err := r.collection.InsertOne(ctx, song)
	if err != nil {
		return storeErr("insert song", err)
	}
	song.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a song by its ObjectID hex string. A missing document is
// (nil, nil); a malformed id is a store error.
func (r *mongoSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storeErr("find song", fmt.Errorf("invalid object ID %q: %w", id, err))
	}

	var song models.Song
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&song)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("find song", err)
	}

	if err := song.Validate(); err != nil {
		return nil, storeErr("find song", err)
	}
	return &song, nil
}

// Find returns songs matching the filter, ordered per filter.Sort. A decode
// or validation failure on any document fails the whole call; silently
// skipping corrupt records would misreport the catalog.
func (r *mongoSongRepository) Find(ctx context.Context, filter SongFilter) ([]*models.Song, error) {
	if filter.Limit <= 0 {
		return nil, storeErr("find songs", fmt.Errorf("limit must be positive, got %d", filter.Limit))
	}

	query := bson.M{}
	if filter.Username != "" {
		query["username"] = filter.Username
	}
	if filter.SearchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.SearchTerm), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"artist": pattern},
		}
	}

	opts := options.Find().
		SetSort(sortDocument(filter.Sort)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, storeErr("find songs", err)
	}
	defer cursor.Close(ctx)

	songs := []*models.Song{}
	for cursor.Next(ctx) {
		var song models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, storeErr("find songs", err)
		}
		if err := song.Validate(); err != nil {
			return nil, storeErr("find songs", err)
		}
		songs = append(songs, &song)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("find songs", err)
	}

	return songs, nil
}

// UpdateByID applies the patch with $set/$unset and always refreshes
// updated_at. It reports whether a document matched the id.
func (r *mongoSongRepository) UpdateByID(ctx context.Context, id string, patch models.SongPatch) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, storeErr("update song", fmt.Errorf("invalid object ID %q: %w", id, err))
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, updateDocument(patch))
	if err != nil {
		return false, storeErr("update song", err)
	}
	return result.MatchedCount > 0, nil
}

// DeleteByID removes the song, reporting whether a document matched.
func (r *mongoSongRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, storeErr("delete song", fmt.Errorf("invalid object ID %q: %w", id, err))
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, storeErr("delete song", err)
	}
	return result.DeletedCount > 0, nil
}

func sortDocument(sort SongSort) bson.D {
	switch sort {
	case SortByArtist:
		return bson.D{{Key: "artist", Value: 1}, {Key: "title", Value: 1}}
	case SortByRecent:
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "title", Value: 1}}
	}
}

// updateDocument translates a patch into a MongoDB update. String values are
// trimmed the same way new songs are. Setting genre to an empty string removes
// the field, keeping absent and cleared genres indistinguishable in the store.
func updateDocument(patch models.SongPatch) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if patch.Title != nil {
		set["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Artist != nil {
		set["artist"] = strings.TrimSpace(*patch.Artist)
	}
	if patch.Genre != nil {
		if genre := strings.TrimSpace(*patch.Genre); genre == "" {
			unset["genre"] = ""
		} else {
			set["genre"] = genre
		}
	}
	if patch.Year != nil {
		set["year"] = *patch.Year
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
