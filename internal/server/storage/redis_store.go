// Package storage is the durable side of the server: user profiles,
// win counters, the leaderboard and room snapshots, all in Redis. The
// game engine never touches this package; the handler layer bridges.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	roomKeyPrefix    = "room:"
	profileKeyPrefix = "user:"
	leaderboardKey   = "leaderboard:wins"

	roomExpiration = 2 * time.Hour
)

// RoomSnapshot is the serialized view of a live room, persisted for
// observability and crash inspection.
type RoomSnapshot struct {
	Code      string               `json:"code"`
	State     int                  `json:"state"`
	Players   []RoomPlayerSnapshot `json:"players"`
	CreatedAt int64                `json:"created_at"`
}

// RoomPlayerSnapshot is one seated player inside a RoomSnapshot.
type RoomPlayerSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

// RedisStore wraps the Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoomSnapshot persists a room snapshot with a TTL.
func (rs *RedisStore) SaveRoomSnapshot(ctx context.Context, snap *RoomSnapshot) error {
	if snap == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal room snapshot: %w", err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+snap.Code, data, roomExpiration).Err()
}

// LoadRoomSnapshot returns the snapshot for a room code, or nil if
// none exists.
func (rs *RedisStore) LoadRoomSnapshot(ctx context.Context, code string) (*RoomSnapshot, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var snap RoomSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal room snapshot: %w", err)
	}
	return &snap, nil
}

// DeleteRoomSnapshot removes a room snapshot.
func (rs *RedisStore) DeleteRoomSnapshot(ctx context.Context, code string) error {
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}
