package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Profile is a persistent user record. The engine never reads it; it
// seeds display metadata at join time and receives win/loss increments
// after a game completes.
type Profile struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Avatar       string `json:"avatar,omitempty"`
	GamesPlayed  int    `json:"games_played"`
	GamesWon     int    `json:"games_won"`
	CreatedAt    int64  `json:"created_at"`
}

// Register creates a profile with a bcrypt-hashed password.
func (rs *RedisStore) Register(ctx context.Context, username, password string) (*Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &Profile{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	ok, err := rs.client.SetNX(ctx, profileKeyPrefix+username, data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserExists
	}
	return profile, nil
}

// Authenticate loads a profile and checks the password.
func (rs *RedisStore) Authenticate(ctx context.Context, username, password string) (*Profile, error) {
	profile, err := rs.LoadProfile(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return profile, nil
}

// LoadProfile returns the profile for a username.
func (rs *RedisStore) LoadProfile(ctx context.Context, username string) (*Profile, error) {
	data, err := rs.client.Get(ctx, profileKeyPrefix+username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (rs *RedisStore) saveProfile(ctx context.Context, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, profileKeyPrefix+profile.Username, data, 0).Err()
}

// UpdateAvatar stores a new avatar reference on the profile.
func (rs *RedisStore) UpdateAvatar(ctx context.Context, username, avatar string) error {
	profile, err := rs.LoadProfile(ctx, username)
	if err != nil {
		return err
	}
	profile.Avatar = avatar
	return rs.saveProfile(ctx, profile)
}

// RecordGameResult increments a player's played counter and, on a win,
// the won counter and the leaderboard score.
func (rs *RedisStore) RecordGameResult(ctx context.Context, username string, won bool) error {
	profile, err := rs.LoadProfile(ctx, username)
	if err != nil {
		return err
	}
	profile.GamesPlayed++
	if won {
		profile.GamesWon++
	}
	if err := rs.saveProfile(ctx, profile); err != nil {
		return err
	}
	if won {
		return rs.client.ZIncrBy(ctx, leaderboardKey, 1, username).Err()
	}
	return nil
}

// LeaderboardRow is one entry of the win leaderboard.
type LeaderboardRow struct {
	Username string
	Wins     int
}

// TopWinners returns up to n players ordered by wins.
func (rs *RedisStore) TopWinners(ctx context.Context, n int) ([]LeaderboardRow, error) {
	entries, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	rows := make([]LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		name, _ := e.Member.(string)
		rows = append(rows, LeaderboardRow{Username: name, Wins: int(e.Score)})
	}
	return rows, nil
}
