// Package handler dispatches decoded client messages to room and
// engine operations and fans engine events back out to room members.
package handler

import (
	"errors"

	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/room"
	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/server/storage"
	"github.com/Fesius1/Grand/internal/types"
)

// Deps are the handler's collaborators.
type Deps struct {
	Rooms *room.Manager
	Store *storage.RedisStore
}

// Handler routes messages by type.
type Handler struct {
	rooms    *room.Manager
	store    *storage.RedisStore
	handlers map[protocol.MessageType]handlerFunc
}

type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// New creates the handler and installs the engine event bridge on the
// room manager.
func New(deps Deps) *Handler {
	h := &Handler{
		rooms: deps.Rooms,
		store: deps.Store,
	}
	h.rooms.SetEventsFactory(h.newRoomEvents)
	h.initHandlers()
	return h
}

func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		protocol.MsgPing: h.handlePing,

		protocol.MsgAddPlayer:  h.handleAddPlayer,
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  h.handleLeaveRoom,
		protocol.MsgStartGame:  h.handleStartGame,

		protocol.MsgDrawCard:    h.handleDrawCard,
		protocol.MsgDrawDiscard: h.handleDrawDiscard,
		protocol.MsgLayDown:     h.handleLayDown,
		protocol.MsgDiscardCard: h.handleDiscardCard,
		protocol.MsgReorderHand: h.handleReorderHand,

		protocol.MsgChangeAvatar:   h.handleChangeAvatar,
		protocol.MsgGetStats:       h.handleGetStats,
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
		protocol.MsgChat:           h.handleChat,
	}
}

// Handle dispatches one message. Panics are contained so one bad
// message cannot take the room down.
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		}
	}()

	fn, ok := h.handlers[msg.Type]
	if !ok {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	fn(client, msg)
}

// HandleDisconnect removes a dropped client from its room.
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	h.rooms.LeaveRoom(client)
}

func (h *Handler) handlePing(client types.ClientInterface, _ *protocol.Message) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, nil))
}

// sendError reports a failed action back to the acting player only.
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// currentRoom resolves the client's room.
func (h *Handler) currentRoom(client types.ClientInterface) (*room.Room, error) {
	code := client.GetRoom()
	if code == "" {
		return nil, apperrors.ErrNotInRoom
	}
	return h.rooms.GetRoom(code)
}
