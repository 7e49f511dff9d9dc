package storage

import (
	"context"
	"errors"

	"StyleSense/internal/models"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrUserNotFound   = errors.New("user not found")
)

// Store persists users, their wardrobes and the studio history.
// Users are never deleted and history is append-only.
type Store interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, username string) (models.User, error)
	AddWardrobeItem(ctx context.Context, username string, item models.WardrobeItem) error
	AppendHistory(ctx context.Context, entry models.HistoryEntry) error
	// ListHistory returns the user's entries in the order they were appended.
	ListHistory(ctx context.Context, username string) ([]models.HistoryEntry, error)
	Close() error
}
