package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ugaemi/pihagi-server/internal/account"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    games_played INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresStore implements AccountStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// FindByID looks up an account by ID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*account.Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nickname, games_played, created_at, last_seen_at
		 FROM accounts WHERE id = $1`, id)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return acc, err
}

// Create inserts a new account.
func (s *PostgresStore) Create(ctx context.Context, acc *account.Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, nickname, games_played, created_at, last_seen_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		acc.ID, acc.Nickname, acc.GamesPlayed, acc.CreatedAt, acc.LastSeenAt)
	return err
}

// UpdateNickname updates the account nickname.
func (s *PostgresStore) UpdateNickname(ctx context.Context, id string, nickname string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE accounts SET nickname = $1 WHERE id = $2`, nickname, id)
	return err
}

// TouchLastSeen updates the last seen timestamp.
func (s *PostgresStore) TouchLastSeen(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE accounts SET last_seen_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}

// IncrementGamesPlayed bumps the games played counter.
func (s *PostgresStore) IncrementGamesPlayed(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE accounts SET games_played = games_played + 1 WHERE id = $1`, id)
	return err
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var acc account.Account
	err := row.Scan(&acc.ID, &acc.Nickname, &acc.GamesPlayed, &acc.CreatedAt, &acc.LastSeenAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
