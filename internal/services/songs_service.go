package services

import (
	"context"
	"log/slog"
	"strings"

	"songbook/internal/models"
	"songbook/internal/repositories"
)

const (
	defaultMaxHistoryEntries = 100
	defaultListLimit         = 50
)

// Limits carries the tunable bounds the service enforces.
type Limits struct {
	// MaxHistoryEntries is the per-user history retention cap.
	MaxHistoryEntries int
	// DefaultListLimit is applied when a caller passes a non-positive limit.
	DefaultListLimit int
}

// ListOptions narrows and orders List results.
type ListOptions struct {
	Username string
	// AllUsers lists the whole catalog instead of one user's songs.
	AllUsers bool
	Sort     repositories.SongSort
	Limit    int
}

// SongsService implements the catalog operations. Every mutation writes a
// history entry attributed to the acting user; reads do not, except View,
// which exists to record that a song was looked at.
type SongsService struct {
	songs   repositories.SongRepository
	history repositories.HistoryRepository
	limits  Limits
}

// NewSongsService creates a catalog service over the given repositories.
func NewSongsService(songs repositories.SongRepository, history repositories.HistoryRepository, limits Limits) *SongsService {
	if limits.MaxHistoryEntries <= 0 {
		limits.MaxHistoryEntries = defaultMaxHistoryEntries
	}
	if limits.DefaultListLimit <= 0 {
		limits.DefaultListLimit = defaultListLimit
	}
	return &SongsService{
		songs:   songs,
		history: history,
		limits:  limits,
	}
}

// Add validates the input, stores a new song owned by username, and records
// an "added" history entry.
func (s *SongsService) Add(ctx context.Context, username string, input models.SongInput) (*models.Song, error) {
	song, err := models.NewSong(username, input)
	if err != nil {
		return nil, err
	}
	if err := s.songs.Insert(ctx, song); err != nil {
		return nil, err
	}
	s.logHistory(ctx, username, models.ActionAdded, song.Title, song.Artist)
	return song, nil
}

// Get returns the song with the given ID. It records nothing; use View when
// the lookup should appear in history.
func (s *SongsService) Get(ctx context.Context, id string) (*models.Song, error) {
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, ErrSongNotFound
	}
	return song, nil
}

// View returns the song and records a "viewed" history entry for username.
func (s *SongsService) View(ctx context.Context, username, id string) (*models.Song, error) {
	if err := requireUsername(username); err != nil {
		return nil, err
	}
	song, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logHistory(ctx, username, models.ActionViewed, song.Title, song.Artist)
	return song, nil
}

// List returns songs matching the options, alphabetical by title unless the
// options say otherwise.
func (s *SongsService) List(ctx context.Context, opts ListOptions) ([]*models.Song, error) {
	username := strings.TrimSpace(opts.Username)
	if opts.AllUsers {
		username = ""
	} else if err := requireUsername(username); err != nil {
		return nil, err
	}
	return s.songs.Find(ctx, repositories.SongFilter{
		Username: username,
		Sort:     opts.Sort,
		Limit:    s.effectiveLimit(opts.Limit),
	})
}

// Search finds the user's songs whose title or artist contains term,
// case-insensitively.
func (s *SongsService) Search(ctx context.Context, username, term string, limit int) ([]*models.Song, error) {
	if err := requireUsername(username); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrNoSearchTerm
	}
	return s.songs.Find(ctx, repositories.SongFilter{
		Username:   strings.TrimSpace(username),
		SearchTerm: term,
		Sort:       repositories.SortByTitle,
		Limit:      s.effectiveLimit(limit),
	})
}

// Update applies the patch to the song and records an "updated" history
// entry carrying the song's post-update title and artist. An empty patch is
// allowed and still refreshes the song's updated_at.
func (s *SongsService) Update(ctx context.Context, username, id string, patch models.SongPatch) (*models.Song, error) {
	if err := requireUsername(username); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	matched, err := s.songs.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrSongNotFound
	}

	// Re-read so the history snapshot reflects the applied patch. A miss
	// here means the song was deleted out from under us.
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, ErrSongNotFound
	}

	s.logHistory(ctx, username, models.ActionUpdated, song.Title, song.Artist)
	return song, nil
}

// Delete removes the song and records a "deleted" history entry carrying the
// song's last title and artist.
func (s *SongsService) Delete(ctx context.Context, username, id string) error {
	if err := requireUsername(username); err != nil {
		return err
	}

	// Snapshot before deleting; afterwards there is nothing left to read.
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if song == nil {
		return ErrSongNotFound
	}

	matched, err := s.songs.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrSongNotFound
	}

	s.logHistory(ctx, username, models.ActionDeleted, song.Title, song.Artist)
	return nil
}

// Play records a "played" history entry for the song. The song document
// itself is not modified.
func (s *SongsService) Play(ctx context.Context, username, id string) (*models.Song, error) {
	if err := requireUsername(username); err != nil {
		return nil, err
	}
	song, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logHistory(ctx, username, models.ActionPlayed, song.Title, song.Artist)
	return song, nil
}

// History returns the user's most recent entries, newest first. Reading
// history is not itself recorded.
func (s *SongsService) History(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error) {
	if err := requireUsername(username); err != nil {
		return nil, err
	}
	return s.history.FindByUsername(ctx, strings.TrimSpace(username), s.effectiveLimit(limit))
}

// logHistory records an audit entry and prunes the user's history down to
// the retention cap. History is best-effort: a failure here is logged and
// swallowed so it never rolls back or fails the catalog operation that
// triggered it.
func (s *SongsService) logHistory(ctx context.Context, username string, action models.Action, title, artist string) {
	entry, err := models.NewHistoryEntry(username, action, title, artist)
	if err != nil {
		slog.Warn("Skipping history entry", "action", action, "error", err)
		return
	}

	if err := s.history.Insert(ctx, entry); err != nil {
		slog.Warn("Failed to record history entry", "action", action, "song", title, "error", err)
		return
	}

	pruned, err := s.history.PruneOldest(ctx, entry.Username, s.limits.MaxHistoryEntries)
	if err != nil {
		slog.Warn("Failed to prune history", "username", entry.Username, "error", err)
		return
	}
	if pruned > 0 {
		slog.Debug("Pruned history entries", "username", entry.Username, "removed", pruned)
	}
}

func (s *SongsService) effectiveLimit(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultListLimit
	}
	return limit
}

func requireUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return &models.ValidationError{Field: "username", Reason: "cannot be empty"}
	}
	return nil
}
