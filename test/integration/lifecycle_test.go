//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songbook/internal/models"
	"songbook/internal/repositories"
	"songbook/internal/services"
)

// testDatabase is a throwaway database name so dropping it after the run
// can never touch real catalog data.
const testDatabase = "songbook_integration_test"

func setupService(t *testing.T) (*services.SongsService, context.Context) {
	t.Helper()

	url := os.Getenv("PROJECT_DB_URL")
	if url == "" {
		t.Skip("PROJECT_DB_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	db, err := models.NewDatabase(ctx, url, testDatabase)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.DB.Drop(context.Background())
		_ = db.Close(context.Background())
	})

	require.NoError(t, db.CreateIndexes(ctx))

	return services.NewSongsService(
		repositories.NewMongoSongRepository(db),
		repositories.NewMongoHistoryRepository(db),
		services.Limits{MaxHistoryEntries: 100, DefaultListLimit: 50},
	), ctx
}

func TestSongLifecycle_Integration(t *testing.T) {
	service, ctx := setupService(t)

	genre := "Rock"
	year := 1975
	duration := 355
	added, err := service.Add(ctx, "safa", models.SongInput{
		Title:    "Bohemian Rhapsody",
		Artist:   "Queen",
		Genre:    &genre,
		Year:     &year,
		Duration: &duration,
	})
	require.NoError(t, err)
	require.False(t, added.ID.IsZero())
	id := added.ID.Hex()

	// Read back exactly what was stored.
	got, err := service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Bohemian Rhapsody", got.Title)
	assert.Equal(t, "Queen", got.Artist)
	assert.Equal(t, "safa", got.Username)
	assert.Equal(t, "Rock", *got.Genre)
	assert.Equal(t, 1975, *got.Year)
	assert.Equal(t, 355, *got.Duration)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))

	// Update bumps updated_at and leaves created_at alone. Stored timestamps
	// carry millisecond precision, so give the clock room to move.
	time.Sleep(5 * time.Millisecond)
	newTitle := "Bohemian Rhapsody (Remastered)"
	updated, err := service.Update(ctx, "safa", id, models.SongPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.True(t, updated.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	// Search finds it by a fragment of the artist, case-insensitively.
	matches, err := service.Search(ctx, "safa", "quee", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, added.ID, matches[0].ID)

	time.Sleep(5 * time.Millisecond)
	_, err = service.Play(ctx, "safa", id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, service.Delete(ctx, "safa", id))

	// Gone for good, and deleting again reports not found.
	_, err = service.Get(ctx, id)
	assert.ErrorIs(t, err, services.ErrSongNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "safa", id), services.ErrSongNotFound)

	// The audit trail survives the song, newest first.
	entries, err := service.History(ctx, "safa", 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, models.ActionDeleted, entries[0].Action)
	assert.Equal(t, models.ActionPlayed, entries[1].Action)
	assert.Equal(t, models.ActionUpdated, entries[2].Action)
	assert.Equal(t, models.ActionAdded, entries[3].Action)
	assert.Equal(t, newTitle, entries[0].SongTitle)
	assert.Equal(t, "Bohemian Rhapsody", entries[3].SongTitle)
}

func TestListScoping_Integration(t *testing.T) {
	service, ctx := setupService(t)

	_, err := service.Add(ctx, "safa", models.SongInput{Title: "A Kind of Magic", Artist: "Queen"})
	require.NoError(t, err)
	_, err = service.Add(ctx, "marwan", models.SongInput{Title: "Under Pressure", Artist: "Queen"})
	require.NoError(t, err)

	mine, err := service.List(ctx, services.ListOptions{Username: "safa"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A Kind of Magic", mine[0].Title)

	everyone, err := service.List(ctx, services.ListOptions{AllUsers: true})
	require.NoError(t, err)
	assert.Len(t, everyone, 2)
}

func TestHistoryRetention_Integration(t *testing.T) {
	url := os.Getenv("PROJECT_DB_URL")
	if url == "" {
		t.Skip("PROJECT_DB_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := models.NewDatabase(ctx, url, testDatabase)
	require.NoError(t, err)
	defer func() {
		_ = db.DB.Drop(context.Background())
		_ = db.Close(context.Background())
	}()

	// A tiny cap makes the pruning observable in a handful of operations.
	service := services.NewSongsService(
		repositories.NewMongoSongRepository(db),
		repositories.NewMongoHistoryRepository(db),
		services.Limits{MaxHistoryEntries: 3, DefaultListLimit: 50},
	)

	for i := 0; i < 5; i++ {
		_, err := service.Add(ctx, "safa", models.SongInput{Title: "Track", Artist: "Artist"})
		require.NoError(t, err)
	}

	entries, err := service.History(ctx, "safa", 50)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
