package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action identifies what a history entry records about a song.
type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionPlayed  Action = "played"
	ActionViewed  Action = "viewed"
)

// IsValid reports whether the action is one of the known values.
func (a Action) IsValid() bool {
	switch a {
	case ActionAdded, ActionUpdated, ActionDeleted, ActionPlayed, ActionViewed:
		return true
	}
	return false
}

// HistoryEntry is an audit record of a user acting on a song. Song title and
// artist are denormalized snapshots taken at the time of the action rather
// than a reference to the song, so an entry stays readable after the song
// itself is deleted.
type HistoryEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	Action     Action             `bson:"action" json:"action"`
	SongTitle  string             `bson:"song_title" json:"song_title"`
	SongArtist string             `bson:"song_artist" json:"song_artist"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// NewHistoryEntry builds a validated entry stamped with the current time.
func NewHistoryEntry(username string, action Action, title, artist string) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		Username:   strings.TrimSpace(username),
		Action:     action,
		SongTitle:  strings.TrimSpace(title),
		SongArtist: strings.TrimSpace(artist),
		Timestamp:  time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks the entry's invariants. The song snapshot may be blank;
// it labels the entry, it does not identify a record.
func (e *HistoryEntry) Validate() error {
	if strings.TrimSpace(e.Username) == "" {
		return &ValidationError{Field: "username", Reason: "cannot be empty"}
	}
	if !e.Action.IsValid() {
		return &ValidationError{Field: "action", Reason: "unknown action " + string(e.Action)}
	}
	return nil
}
