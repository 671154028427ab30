package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client)
}

func TestRoomSnapshotSaveLoadDelete(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	snap := &RoomSnapshot{
		Code:  "123456",
		State: 1,
		Players: []RoomPlayerSnapshot{
			{ID: "p1", Name: "Alice", Seat: 0},
			{ID: "p2", Name: "Bob", Seat: 1},
		},
		CreatedAt: time.Now().Unix(),
	}

	require.NoError(t, store.SaveRoomSnapshot(ctx, snap))

	loaded, err := store.LoadRoomSnapshot(ctx, snap.Code)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snap.Code, loaded.Code)
	assert.Equal(t, snap.State, loaded.State)
	assert.Equal(t, snap.Players, loaded.Players)

	require.NoError(t, store.DeleteRoomSnapshot(ctx, snap.Code))

	loaded, err = store.LoadRoomSnapshot(ctx, snap.Code)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadRoomSnapshotMissing(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	snap, err := store.LoadRoomSnapshot(context.Background(), "999999")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveRoomSnapshotNil(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	assert.NoError(t, store.SaveRoomSnapshot(context.Background(), nil))
}
