package types

import (
	"github.com/Fesius1/Grand/internal/protocol"
)

// ClientInterface is one connected player as seen by rooms and
// handlers: the transient session record, distinct from the engine's
// durable Player state.
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetAvatar() string
	SetAvatar(avatar string)
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}
