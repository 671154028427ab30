package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	profile, err := store.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.NotEqual(t, "s3cret", profile.PasswordHash, "password is never stored in the clear")

	// Duplicate username.
	_, err = store.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUserExists)

	// Right and wrong passwords.
	_, err = store.Authenticate(ctx, "alice", "s3cret")
	assert.NoError(t, err)
	_, err = store.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoadProfileNotFound(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	_, err := store.LoadProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateAvatar(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, store.UpdateAvatar(ctx, "alice", "cat"))

	profile, err := store.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "cat", profile.Avatar)

	assert.ErrorIs(t, store.UpdateAvatar(ctx, "ghost", "cat"), ErrUserNotFound)
}

func TestRecordGameResult(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, store.RecordGameResult(ctx, "alice", false))
	require.NoError(t, store.RecordGameResult(ctx, "alice", true))

	profile, err := store.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.GamesPlayed)
	assert.Equal(t, 1, profile.GamesWon)

	assert.ErrorIs(t, store.RecordGameResult(ctx, "ghost", true), ErrUserNotFound)
}

func TestTopWinners(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := store.Register(ctx, name, "pw")
		require.NoError(t, err)
	}
	for range 3 {
		require.NoError(t, store.RecordGameResult(ctx, "bob", true))
	}
	require.NoError(t, store.RecordGameResult(ctx, "alice", true))

	rows, err := store.TopWinners(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2, "players without wins never chart")
	assert.Equal(t, LeaderboardRow{Username: "bob", Wins: 3}, rows[0])
	assert.Equal(t, LeaderboardRow{Username: "alice", Wins: 1}, rows[1])

	rows, err = store.TopWinners(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0].Username)
}
