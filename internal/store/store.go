package store

import (
	"context"

	"github.com/ugaemi/pihagi-server/internal/account"
)

// AccountStore defines the interface for persistent account storage.
type AccountStore interface {
	// FindByID looks up an account by ID.
	FindByID(ctx context.Context, id string) (*account.Account, error)
	// Create inserts a new account.
	Create(ctx context.Context, acc *account.Account) error
	// UpdateNickname updates the account nickname.
	UpdateNickname(ctx context.Context, id string, nickname string) error
	// TouchLastSeen updates the last seen timestamp.
	TouchLastSeen(ctx context.Context, id string) error
	// IncrementGamesPlayed bumps the games played counter.
	IncrementGamesPlayed(ctx context.Context, id string) error
	// Close releases database resources.
	Close() error
}
