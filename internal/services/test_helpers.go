package services

import (
	"context"

	"songbook/internal/models"
	"songbook/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockSongRepository is a mock implementation of SongRepository for testing
type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) Insert(ctx context.Context, song *models.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongRepository) Find(ctx context.Context, filter repositories.SongFilter) ([]*models.Song, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Song), args.Error(1)
}

func (m *MockSongRepository) UpdateByID(ctx context.Context, id string, patch models.SongPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockSongRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockHistoryRepository is a mock implementation of HistoryRepository for testing
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Insert(ctx context.Context, entry *models.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByUsername(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) PruneOldest(ctx context.Context, username string, keep int) (int64, error) {
	args := m.Called(ctx, username, keep)
	return args.Get(0).(int64), args.Error(1)
}
