// Package room manages game rooms: membership, lifecycle and the
// per-room lock that serializes all engine calls. Each room owns its
// own engine instance; there is no process-wide player list.
package room

import (
	"sync"
	"time"

	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/types"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "0123456789"

	// MaxPlayers bounds the table size; dealing 12 cards each from a
	// 108-card deck supports up to four comfortably.
	MaxPlayers = 4
)

// State is the room lifecycle state.
type State int

const (
	StateWaiting State = iota
	StatePlaying
	StateFinished
)

// Member is a seated client in a room.
type Member struct {
	Client types.ClientInterface
	Seat   int
}

// Room is one game table. The engine is a single sequential state
// machine, so every engine call goes through WithLock; membership and
// broadcast use a separate lock so event fan-out from inside an engine
// action cannot deadlock.
type Room struct {
	Code      string
	CreatedAt time.Time

	actionMu sync.Mutex // serializes engine access
	game     *engine.Game

	mu      sync.RWMutex // guards state, members, order
	state   State
	members map[string]*Member
	order   []string // member IDs by seat
}

func newRoom(code string) *Room {
	return &Room{
		Code:      code,
		CreatedAt: time.Now(),
		state:     StateWaiting,
		members:   make(map[string]*Member),
	}
}

// WithLock runs fn with exclusive access to the room's engine.
// Exactly one player action is processed to completion at a time.
func (r *Room) WithLock(fn func(g *engine.Game)) {
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	fn(r.game)
}

// State returns the lifecycle state.
func (r *Room) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// SetState updates the lifecycle state.
func (r *Room) SetState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// MemberIDs returns the member IDs in seat order.
func (r *Room) MemberIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Member returns the seated member with the given ID, or nil.
func (r *Room) Member(id string) *Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[id]
}

// Len returns the number of seated members.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast sends a message to every member.
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		m.Client.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to every member but one.
func (r *Room) BroadcastExcept(exceptID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, m := range r.members {
		if id != exceptID {
			m.Client.SendMessage(msg)
		}
	}
}

// SendTo sends a message to a single member.
func (r *Room) SendTo(id string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.members[id]; ok {
		m.Client.SendMessage(msg)
	}
}

// PlayerInfos builds the public view of every member for lobby
// updates. It reads engine state, so call it from inside WithLock (or
// while no action can be in flight).
func (r *Room) PlayerInfos() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]protocol.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		m := r.members[id]
		info := protocol.PlayerInfo{
			ID:     id,
			Name:   m.Client.GetName(),
			Avatar: m.Client.GetAvatar(),
			Seat:   m.Seat,
		}
		if p := r.game.Player(id); p != nil {
			info.CardCount = p.Hand.Len()
			info.RoundScore = p.RoundScore
			info.TotalScore = p.TotalScore
		}
		infos = append(infos, info)
	}
	return infos
}

// addMember seats a client. Callers hold the manager lock.
func (r *Room) addMember(client types.ClientInterface) *Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := &Member{Client: client, Seat: len(r.order)}
	r.members[client.GetID()] = m
	r.order = append(r.order, client.GetID())
	return m
}

// removeMember unseats a client and compacts the seat order.
func (r *Room) removeMember(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return
	}
	delete(r.members, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for i, mid := range r.order {
		r.members[mid].Seat = i
	}
}
