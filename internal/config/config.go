package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig configures the WebSocket/HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the game rules and room lifecycle settings.
type GameConfig struct {
	HandSize       int `yaml:"hand_size"`        // cards dealt per player
	WinningScore   int `yaml:"winning_score"`    // game ends at this total
	MinPickupScore int `yaml:"min_pickup_score"` // round points to unlock pile pickup
	RoomTimeout    int `yaml:"room_timeout"`     // idle waiting-room timeout (minutes)
}

// RoomTimeoutDuration returns the idle room timeout.
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// Load reads a config file, filling defaults for missing values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.HandSize == 0 {
		cfg.Game.HandSize = 12
	}
	if cfg.Game.WinningScore == 0 {
		cfg.Game.WinningScore = 1000
	}
	if cfg.Game.MinPickupScore == 0 {
		cfg.Game.MinPickupScore = 30
	}
	if cfg.Game.RoomTimeout == 0 {
		cfg.Game.RoomTimeout = 10
	}
}
