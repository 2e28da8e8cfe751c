package repositories

import (
	"context"

	"songbook/internal/models"
)

// HistoryRepository defines the persistence operations for audit history.
type HistoryRepository interface {
	// Insert stores a new history entry and fills in its generated ID.
	Insert(ctx context.Context, entry *models.HistoryEntry) error

	// FindByUsername returns the user's most recent entries, newest first.
	FindByUsername(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error)

	// PruneOldest deletes the user's entries beyond the keep newest ones,
	// returning how many were removed.
	PruneOldest(ctx context.Context, username string, keep int) (int64, error)
}
