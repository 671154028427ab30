package room

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/server/storage"
	"github.com/Fesius1/Grand/internal/types"
)

// EventsFactory builds the engine event sink for a room. The handler
// layer supplies it so engine events reach the room's clients without
// the engine knowing about transport.
type EventsFactory func(r *Room) engine.Events

// Manager owns all live rooms in the process, indexed by room code.
type Manager struct {
	rules       engine.Rules
	store       *storage.RedisStore
	events      EventsFactory
	roomTimeout time.Duration

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates a room manager and starts its idle-room cleanup
// loop. store may be nil in tests.
func NewManager(rules engine.Rules, store *storage.RedisStore, roomTimeout time.Duration) *Manager {
	m := &Manager{
		rules:       rules,
		store:       store,
		events:      func(*Room) engine.Events { return engine.NopEvents{} },
		roomTimeout: roomTimeout,
		rooms:       make(map[string]*Room),
	}
	go m.cleanupLoop()
	return m
}

// SetEventsFactory installs the engine event sink factory. Must be
// called before any room is created.
func (m *Manager) SetEventsFactory(f EventsFactory) {
	m.events = f
}

// CreateRoom creates a room with the creating client seated.
func (m *Manager) CreateRoom(client types.ClientInterface) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.generateCode()
	r := newRoom(code)
	r.game = engine.New(m.rules, m.events(r))

	member := r.addMember(client)
	client.SetRoom(code)
	m.rooms[code] = r

	m.persist(r)
	logger.LogInfo("room %s created by %s (seat %d)", code, client.GetName(), member.Seat)
	return r, nil
}

// JoinRoom seats a client in an existing room.
func (m *Manager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	if r.State() != StateWaiting {
		return nil, apperrors.ErrGameStarted
	}
	if r.Len() >= MaxPlayers {
		return nil, apperrors.ErrRoomFull
	}

	r.addMember(client)
	client.SetRoom(code)

	m.persist(r)
	logger.LogInfo("player %s joined room %s", client.GetName(), code)
	return r, nil
}

// LeaveRoom unseats a client from its current room, dissolving the
// room when it empties or when a game was in progress.
func (m *Manager) LeaveRoom(client types.ClientInterface) {
	code := client.GetRoom()
	if code == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return
	}

	r.removeMember(client.GetID())
	client.SetRoom("")
	r.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID: client.GetID(),
	}))

	// A running game cannot continue with a missing seat.
	if r.Len() == 0 || r.State() == StatePlaying {
		m.dropRoom(r)
		return
	}
	m.persist(r)
}

// GetRoom returns the live room with the given code.
func (m *Manager) GetRoom(code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rooms[code]; ok {
		return r, nil
	}
	return nil, apperrors.ErrRoomNotFound
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// generateCode returns a room code not currently in use. Callers hold
// the manager lock.
func (m *Manager) generateCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		if _, taken := m.rooms[string(code)]; !taken {
			return string(code)
		}
	}
}

// dropRoom removes a room and its snapshot. Callers hold the manager
// lock.
func (m *Manager) dropRoom(r *Room) {
	delete(m.rooms, r.Code)
	if m.store != nil {
		go func() { _ = m.store.DeleteRoomSnapshot(context.Background(), r.Code) }()
	}
	logger.LogInfo("room %s dissolved", r.Code)
}

// persist saves a room snapshot for observability. Best effort.
func (m *Manager) persist(r *Room) {
	if m.store == nil {
		return
	}
	snap := m.snapshot(r)
	go func() { _ = m.store.SaveRoomSnapshot(context.Background(), snap) }()
}

func (m *Manager) snapshot(r *Room) *storage.RoomSnapshot {
	snap := &storage.RoomSnapshot{
		Code:      r.Code,
		State:     int(r.State()),
		CreatedAt: r.CreatedAt.Unix(),
	}
	for _, id := range r.MemberIDs() {
		member := r.Member(id)
		snap.Players = append(snap.Players, storage.RoomPlayerSnapshot{
			ID:   id,
			Name: member.Client.GetName(),
			Seat: member.Seat,
		})
	}
	return snap
}

// cleanupLoop dissolves rooms that sat in the waiting state past the
// room timeout.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for _, r := range m.rooms {
			if r.State() == StateWaiting && time.Since(r.CreatedAt) > m.roomTimeout {
				logger.LogInfo("room %s timed out waiting for players", r.Code)
				m.dropRoom(r)
			}
		}
		m.mu.Unlock()
	}
}
