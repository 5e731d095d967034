package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a persistent player account. Accounts are
// guest-only: a device keeps its ID locally and presents it on join to
// resume the same nickname and play history.
type Account struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	GamesPlayed int       `json:"games_played"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// NewGuestAccount creates a new guest account with the given nickname.
func NewGuestAccount(nickname string) *Account {
	now := time.Now()
	return &Account{
		ID:         uuid.New().String(),
		Nickname:   nickname,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}
