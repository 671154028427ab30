package handler

import (
	"context"
	"errors"
	"time"

	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/server/storage"
	"github.com/Fesius1/Grand/internal/types"
)

const storeTimeout = 3 * time.Second

// handleChangeAvatar updates the avatar reference on the session and,
// for registered users, on the stored profile.
func (h *Handler) handleChangeAvatar(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.ChangeAvatarPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SetAvatar(payload.Avatar)
	h.broadcastLobby(client)

	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := h.store.UpdateAvatar(ctx, client.GetName(), payload.Avatar); err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		logger.LogError("update avatar for %s: %v", client.GetName(), err)
	}
}

// handleGetStats returns the caller's persistent win/loss record.
func (h *Handler) handleGetStats(client types.ClientInterface, _ *protocol.Message) {
	if h.store == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	profile, err := h.store.LoadProfile(ctx, client.GetName())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			client.SendMessage(protocol.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
				Username: client.GetName(),
			}))
			return
		}
		h.sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		Username:    profile.Username,
		GamesPlayed: profile.GamesPlayed,
		GamesWon:    profile.GamesWon,
	}))
}

// handleGetLeaderboard returns the top win counts.
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, _ *protocol.Message) {
	if h.store == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	rows, err := h.store.TopWinners(ctx, 10)
	if err != nil {
		h.sendError(client, err)
		return
	}

	entries := make([]protocol.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = protocol.LeaderboardEntry{Username: row.Username, Wins: row.Wins}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: entries,
	}))
}

// handleChat relays a chat line to the room.
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.ChatPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil || payload.Text == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	r.Broadcast(protocol.MustNewMessage(protocol.MsgChatMessage, protocol.ChatMessagePayload{
		PlayerID: client.GetID(),
		Name:     client.GetName(),
		Text:     payload.Text,
	}))
}
