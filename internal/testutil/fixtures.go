package testutil

import (
	"time"

	"songbook/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sample ObjectID hex strings for tests that need stable IDs.
const (
	TestSongID1 = "507f1f77bcf86cd799439011"
	TestSongID2 = "507f1f77bcf86cd799439012"
)

// SongBuilder provides a fluent interface for creating test songs
type SongBuilder struct {
	song *models.Song
}

// NewSongBuilder creates a new song builder with default values. Timestamps
// are millisecond-aligned so songs survive a BSON round-trip unchanged.
func NewSongBuilder() *SongBuilder {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &SongBuilder{
		song: &models.Song{
			Title:     "Test Song",
			Artist:    "Test Artist",
			Username:  "testuser",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the song ID from a hex string
func (b *SongBuilder) WithID(id string) *SongBuilder {
	objID, _ := primitive.ObjectIDFromHex(id)
	b.song.ID = objID
	return b
}

// WithTitle sets the song title
func (b *SongBuilder) WithTitle(title string) *SongBuilder {
	b.song.Title = title
	return b
}

// WithArtist sets the song artist
func (b *SongBuilder) WithArtist(artist string) *SongBuilder {
	b.song.Artist = artist
	return b
}

// WithUsername sets the owning user
func (b *SongBuilder) WithUsername(username string) *SongBuilder {
	b.song.Username = username
	return b
}

// WithGenre sets the song genre
func (b *SongBuilder) WithGenre(genre string) *SongBuilder {
	b.song.Genre = &genre
	return b
}

// WithYear sets the release year
func (b *SongBuilder) WithYear(year int) *SongBuilder {
	b.song.Year = &year
	return b
}

// WithDuration sets the song duration in seconds
func (b *SongBuilder) WithDuration(seconds int) *SongBuilder {
	b.song.Duration = &seconds
	return b
}

// WithTimestamps sets both timestamps explicitly
func (b *SongBuilder) WithTimestamps(createdAt, updatedAt time.Time) *SongBuilder {
	b.song.CreatedAt = createdAt
	b.song.UpdatedAt = updatedAt
	return b
}

// Build returns the constructed song
func (b *SongBuilder) Build() *models.Song {
	return b.song
}

// HistoryEntryBuilder provides a fluent interface for creating test entries
type HistoryEntryBuilder struct {
	entry *models.HistoryEntry
}

// NewHistoryEntryBuilder creates a builder with default values
func NewHistoryEntryBuilder() *HistoryEntryBuilder {
	return &HistoryEntryBuilder{
		entry: &models.HistoryEntry{
			Username:   "testuser",
			Action:     models.ActionAdded,
			SongTitle:  "Test Song",
			SongArtist: "Test Artist",
			Timestamp:  time.Now().UTC().Truncate(time.Millisecond),
		},
	}
}

// WithUsername sets the acting user
func (b *HistoryEntryBuilder) WithUsername(username string) *HistoryEntryBuilder {
	b.entry.Username = username
	return b
}

// WithAction sets the recorded action
func (b *HistoryEntryBuilder) WithAction(action models.Action) *HistoryEntryBuilder {
	b.entry.Action = action
	return b
}

// WithSong sets the title and artist snapshot
func (b *HistoryEntryBuilder) WithSong(title, artist string) *HistoryEntryBuilder {
	b.entry.SongTitle = title
	b.entry.SongArtist = artist
	return b
}

// WithTimestamp sets the entry timestamp
func (b *HistoryEntryBuilder) WithTimestamp(ts time.Time) *HistoryEntryBuilder {
	b.entry.Timestamp = ts
	return b
}

// Build returns the constructed entry
func (b *HistoryEntryBuilder) Build() *models.HistoryEntry {
	return b.entry
}

// CreateTestSong creates a basic test song with default values
func CreateTestSong() *models.Song {
	return NewSongBuilder().
		WithID(TestSongID1).
		WithGenre("Rock").
		WithYear(1975).
		WithDuration(355).
		Build()
}
