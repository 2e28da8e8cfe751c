package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// minYear is the oldest release year accepted; the upper bound is the
// current year plus one so upcoming releases can be cataloged.
const minYear = 1900

// Song represents a catalog entry owned by a single user.
type Song struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Artist   string             `bson:"artist" json:"artist"`
	Username string             `bson:"username" json:"username"`

	// Optional metadata. Pointer fields keep absent values absent in the
	// stored document instead of collapsing them to zero values.
	Genre    *string `bson:"genre,omitempty" json:"genre,omitempty"`
	Year     *int    `bson:"year,omitempty" json:"year,omitempty"`
	Duration *int    `bson:"duration,omitempty" json:"duration,omitempty"` // seconds

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SongInput carries the user-supplied fields for a new catalog entry.
type SongInput struct {
	Title    string
	Artist   string
	Genre    *string
	Year     *int
	Duration *int
}

// NewSong builds a validated Song owned by username. Both timestamps are
// set to the same instant, so a freshly added song always satisfies
// created_at == updated_at.
func NewSong(username string, input SongInput) (*Song, error) {
	now := time.Now().UTC()
	song := &Song{
		Title:     strings.TrimSpace(input.Title),
		Artist:    strings.TrimSpace(input.Artist),
		Username:  strings.TrimSpace(username),
		Genre:     trimmed(input.Genre),
		Year:      input.Year,
		Duration:  input.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}
	return song, nil
}

// Validate checks the invariants shared by user input and stored documents.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(s.Artist) == "" {
		return &ValidationError{Field: "artist", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(s.Username) == "" {
		return &ValidationError{Field: "username", Reason: "cannot be empty"}
	}
	if s.Year != nil {
		if err := validateYear(*s.Year); err != nil {
			return err
		}
	}
	if s.Duration != nil {
		if err := validateDuration(*s.Duration); err != nil {
			return err
		}
	}
	return nil
}

// SongPatch is a partial update; nil fields are left untouched. An empty
// patch is valid: applying it still refreshes the song's updated_at.
type SongPatch struct {
	Title    *string
	Artist   *string
	Genre    *string
	Year     *int
	Duration *int
}

// IsEmpty reports whether the patch supplies no fields.
func (p SongPatch) IsEmpty() bool {
	return p.Title == nil && p.Artist == nil && p.Genre == nil && p.Year == nil && p.Duration == nil
}

// Validate applies the Song field rules to the supplied fields only.
func (p SongPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if p.Artist != nil && strings.TrimSpace(*p.Artist) == "" {
		return &ValidationError{Field: "artist", Reason: "cannot be empty"}
	}
	if p.Year != nil {
		if err := validateYear(*p.Year); err != nil {
			return err
		}
	}
	if p.Duration != nil {
		if err := validateDuration(*p.Duration); err != nil {
			return err
		}
	}
	return nil
}

func validateYear(year int) error {
	max := time.Now().Year() + 1
	if year < minYear || year > max {
		return &ValidationError{Field: "year", Reason: fmt.Sprintf("must be between %d and %d", minYear, max)}
	}
	return nil
}

func validateDuration(duration int) error {
	if duration < 0 {
		return &ValidationError{Field: "duration", Reason: "cannot be negative"}
	}
	return nil
}

// trimmed normalizes an optional string, collapsing blank input to absent.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
