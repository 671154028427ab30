package handler

import (
	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/game/room"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/types"
)

// handleAddPlayer records the player's display name and avatar
// reference, seeding them from the profile store when the name is a
// registered user.
func (h *Handler) handleAddPlayer(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.AddPlayerPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil || payload.Name == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SetName(payload.Name)
	client.SetAvatar(payload.Avatar)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID: client.GetID(),
		Name:     payload.Name,
	}))
	h.broadcastLobby(client)
}

func (h *Handler) handleCreateRoom(client types.ClientInterface, _ *protocol.Message) {
	if client.GetRoom() != "" {
		h.sendError(client, apperrors.ErrGameStarted)
		return
	}

	r, err := h.rooms.CreateRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		Code: r.Code,
	}))
	h.broadcastLobby(client)
}

func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.JoinRoomPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.rooms.JoinRoom(client, payload.Code)
	if err != nil {
		h.sendError(client, err)
		return
	}

	var infos []protocol.PlayerInfo
	r.WithLock(func(*engine.Game) {
		infos = r.PlayerInfos()
	})
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		Code:    r.Code,
		Players: infos,
	}))

	joined := infos[len(infos)-1]
	r.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: joined,
	}))
}

func (h *Handler) handleLeaveRoom(client types.ClientInterface, _ *protocol.Message) {
	h.rooms.LeaveRoom(client)
}

// handleStartGame seats every room member in the engine and deals the
// first round.
func (h *Handler) handleStartGame(client types.ClientInterface, _ *protocol.Message) {
	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}
	if r.State() != room.StateWaiting {
		h.sendError(client, apperrors.ErrGameStarted)
		return
	}

	var startErr error
	r.WithLock(func(g *engine.Game) {
		for _, id := range r.MemberIDs() {
			m := r.Member(id)
			if m == nil {
				continue
			}
			if startErr = g.AddPlayer(id, m.Client.GetName(), m.Client.GetAvatar()); startErr != nil {
				return
			}
		}
		startErr = g.Start()
	})
	if startErr != nil {
		h.sendError(client, startErr)
		return
	}
	r.SetState(room.StatePlaying)
}

// broadcastLobby pushes the refreshed member list to the client's
// room, if any.
func (h *Handler) broadcastLobby(client types.ClientInterface) {
	r, err := h.currentRoom(client)
	if err != nil {
		return
	}
	var infos []protocol.PlayerInfo
	r.WithLock(func(*engine.Game) {
		infos = r.PlayerInfos()
	})
	r.Broadcast(protocol.MustNewMessage(protocol.MsgLobbyUpdate, protocol.LobbyUpdatePayload{
		Players: infos,
	}))
}
