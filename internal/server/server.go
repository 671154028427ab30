// Package server is the transport layer: it accepts WebSocket
// connections, pumps messages to and from clients and exposes the
// HTTP auth endpoints. Game logic lives in internal/game; this package
// only serializes inbound requests into per-room engine calls.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Fesius1/Grand/internal/config"
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/game/room"
	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/server/handler"
	"github.com/Fesius1/Grand/internal/server/storage"
)

// Server is the WebSocket game server.
type Server struct {
	config      *config.Config
	redis       *redis.Client
	store       *storage.RedisStore
	roomManager *room.Manager
	handler     *handler.Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	httpServer *http.Server
}

// NewServer wires up the server: Redis, storage, room manager and the
// message handler.
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	s := &Server{
		config:  cfg,
		redis:   rdb,
		store:   storage.NewRedisStore(rdb),
		clients: make(map[string]*Client),
	}

	rules := engine.Rules{
		HandSize:       cfg.Game.HandSize,
		WinningScore:   cfg.Game.WinningScore,
		MinPickupScore: cfg.Game.MinPickupScore,
	}
	s.roomManager = room.NewManager(rules, s.store, cfg.Game.RoomTimeoutDuration())

	s.handler = handler.New(handler.Deps{
		Rooms: s.roomManager,
		Store: s.store,
	})

	return s, nil
}

// Start blocks serving WebSocket and HTTP traffic.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)

	logger.LogInfo("server listening on ws://%s/ws", addr)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown closes all client connections and stops the listener.
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, c := range s.clients {
		c.Close()
	}
	s.clientsMu.Unlock()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}
	_ = s.redis.Close()
}

// GetOnlineCount returns the number of connected clients.
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// UnregisterClient drops a client from the registry.
func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[id]; ok {
		delete(s.clients, id)
		logger.LogInfo("client %s unregistered", id)
	}
}

func (s *Server) registerClient(c *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c.ID] = c
}
