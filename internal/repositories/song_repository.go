package repositories

import (
	"context"

	"songbook/internal/models"
)

// SongSort selects the ordering of listed songs.
type SongSort int

const (
	// SortByTitle orders alphabetically by title.
	SortByTitle SongSort = iota
	// SortByArtist orders alphabetically by artist, then title.
	SortByArtist
	// SortByRecent orders newest first by created_at.
	SortByRecent
)

// SongFilter narrows Find results. Zero values mean "no constraint" except
// Limit, which callers must set to a positive value.
type SongFilter struct {
	// Username restricts results to one owner when non-empty.
	Username string
	// SearchTerm matches title or artist as a case-insensitive substring.
	SearchTerm string
	Sort       SongSort
	Limit      int
}

// SongRepository defines the persistence operations for songs.
type SongRepository interface {
	// Insert stores a new song and fills in its generated ID.
	Insert(ctx context.Context, song *models.Song) error

	// FindByID returns the song, or (nil, nil) when no document matches.
	// A malformed id is a store error, not a lookup miss.
	FindByID(ctx context.Context, id string) (*models.Song, error)

	// Find returns songs matching the filter, ordered per filter.Sort.
	Find(ctx context.Context, filter SongFilter) ([]*models.Song, error)

	// UpdateByID applies the patch and refreshes updated_at. It reports
	// whether a document matched.
	UpdateByID(ctx context.Context, id string, patch models.SongPatch) (bool, error)

	// DeleteByID removes the song, reporting whether a document matched.
	DeleteByID(ctx context.Context, id string) (bool, error)
}
