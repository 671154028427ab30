package handler

import (
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/game/meld"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/protocol/convert"
	"github.com/Fesius1/Grand/internal/types"
)

// handleDrawCard draws a single card from the deck top or, when the
// payload says so, the top of the discard pile.
func (h *Handler) handleDrawCard(client types.ClientInterface, msg *protocol.Message) {
	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	source := engine.SourceDeck
	if len(msg.Payload) > 0 {
		var payload protocol.DrawCardPayload
		if err := protocol.DecodePayload(msg, &payload); err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		if payload.Source == "discard" {
			source = engine.SourceDiscardTop
		}
	}

	var drawErr error
	r.WithLock(func(g *engine.Game) {
		_, drawErr = g.Draw(client.GetID(), source)
	})
	if drawErr != nil {
		h.sendError(client, drawErr)
	}
}

// handleDrawDiscard picks up the pile card at index plus everything
// discarded after it.
func (h *Handler) handleDrawDiscard(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.DrawDiscardPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	var takeErr error
	r.WithLock(func(g *engine.Game) {
		_, takeErr = g.DrawFromDiscard(client.GetID(), payload.Index)
	})
	if takeErr != nil {
		h.sendError(client, takeErr)
	}
}

// handleLayDown proposes a meld from the selected cards.
func (h *Handler) handleLayDown(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.LayDownPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	cards, err := convert.CardsFromInfos(payload.Cards)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	var meldErr error
	r.WithLock(func(g *engine.Game) {
		_, meldErr = g.ProposeMeld(client.GetID(), cards, meld.KindFromName(payload.Kind))
	})
	if meldErr != nil {
		h.sendError(client, meldErr)
	}
}

// handleDiscardCard discards one card, ending the turn.
func (h *Handler) handleDiscardCard(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.DiscardCardPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	c, err := convert.CardFromInfo(payload.Card)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	var discardErr error
	r.WithLock(func(g *engine.Game) {
		discardErr = g.Discard(client.GetID(), c)
	})
	if discardErr != nil {
		h.sendError(client, discardErr)
	}
}

// handleReorderHand rearranges the player's own hand for display.
func (h *Handler) handleReorderHand(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.ReorderHandPayload
	if err := protocol.DecodePayload(msg, &payload); err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	cards, err := convert.CardsFromInfos(payload.Cards)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	var reorderErr error
	r.WithLock(func(g *engine.Game) {
		reorderErr = g.ReorderHand(client.GetID(), cards)
	})
	if reorderErr != nil {
		h.sendError(client, reorderErr)
	}
}
