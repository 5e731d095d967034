package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugaemi/pihagi-server/internal/account"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up accounts table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM accounts")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore_CreateAndFindByID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acc := account.NewGuestAccount("테스트유저")
	err := s.Create(ctx, acc)
	require.NoError(t, err)

	found, err := s.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, acc.ID, found.ID)
	assert.Equal(t, "테스트유저", found.Nickname)
	assert.Zero(t, found.GamesPlayed)
}

func TestPostgresStore_FindByID_NotFound(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	found, err := s.FindByID(ctx, "nonexistent-id")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgresStore_UpdateNickname(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acc := account.NewGuestAccount("이전닉네임")
	err := s.Create(ctx, acc)
	require.NoError(t, err)

	err = s.UpdateNickname(ctx, acc.ID, "새닉네임")
	require.NoError(t, err)

	found, err := s.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "새닉네임", found.Nickname)
}

func TestPostgresStore_TouchLastSeen(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acc := account.NewGuestAccount("로그인테스트")
	acc.LastSeenAt = acc.LastSeenAt.Add(-time.Hour)
	err := s.Create(ctx, acc)
	require.NoError(t, err)

	err = s.TouchLastSeen(ctx, acc.ID)
	require.NoError(t, err)

	found, err := s.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, found.LastSeenAt.After(acc.LastSeenAt))
}

func TestPostgresStore_IncrementGamesPlayed(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acc := account.NewGuestAccount("플레이어")
	err := s.Create(ctx, acc)
	require.NoError(t, err)

	err = s.IncrementGamesPlayed(ctx, acc.ID)
	require.NoError(t, err)
	err = s.IncrementGamesPlayed(ctx, acc.ID)
	require.NoError(t, err)

	found, err := s.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.GamesPlayed)
}

func TestPostgresStore_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acc := account.NewGuestAccount("유저1")
	err := s.Create(ctx, acc)
	require.NoError(t, err)

	dup := account.NewGuestAccount("유저2")
	dup.ID = acc.ID
	err = s.Create(ctx, dup)
	assert.Error(t, err)
}
