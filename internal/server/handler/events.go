package handler

import (
	"context"

	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/game/meld"
	"github.com/Fesius1/Grand/internal/game/room"
	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/protocol/convert"
)

// roomEvents bridges engine events to the room's clients. Its methods
// run inside the room's action lock, so they only use the room's
// membership lock for delivery.
type roomEvents struct {
	handler *Handler
	room    *room.Room
}

func (h *Handler) newRoomEvents(r *room.Room) engine.Events {
	return &roomEvents{handler: h, room: r}
}

// HandsDealt sends each player their own hand privately and the card
// counts publicly.
func (e *roomEvents) HandsDealt(hands map[string][]card.Card) {
	counts := make(map[string]int, len(hands))
	for id, hand := range hands {
		counts[id] = len(hand)
		e.room.SendTo(id, protocol.MustNewMessage(protocol.MsgHandsDealt, protocol.HandsDealtPayload{
			Cards: convert.CardsToInfos(hand),
		}))
	}
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgCardCount, protocol.CardCountPayload{
		Counts: counts,
	}))
}

// CardDrawn tells the drawing player which card they got; everyone
// else only learns the count change via the turn broadcast.
func (e *roomEvents) CardDrawn(playerID string, c card.Card, fromDiscard bool, deckRemaining int) {
	e.room.SendTo(playerID, protocol.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
		Card:          convert.CardToInfo(c),
		DeckRemaining: deckRemaining,
	}))
	e.broadcastCounts()
}

func (e *roomEvents) DiscardTaken(playerID string, index int, cards []card.Card) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgDiscardTaken, protocol.DiscardTakenPayload{
		PlayerID: playerID,
		Index:    index,
		Cards:    convert.CardsToInfos(cards),
	}))
	e.broadcastCounts()
}

func (e *roomEvents) MeldCommitted(playerID string, m meld.Meld, points, roundScore int) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgMeldCommitted, protocol.MeldCommittedPayload{
		PlayerID:   playerID,
		Kind:       m.Kind.String(),
		Cards:      convert.CardsToInfos(m.Cards),
		Points:     points,
		RoundScore: roundScore,
	}))
	e.broadcastCounts()
}

func (e *roomEvents) CardDiscarded(playerID string, c card.Card) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgCardDiscarded, protocol.CardDiscardedPayload{
		PlayerID: playerID,
		Card:     convert.CardToInfo(c),
	}))
	e.broadcastCounts()
}

func (e *roomEvents) TurnChanged(playerID string, phase engine.Phase) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgTurnChanged, protocol.TurnChangedPayload{
		PlayerID: playerID,
		Phase:    phase.String(),
	}))
}

func (e *roomEvents) RoundComplete(winnerID string, totals map[string]int) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgRoundComplete, protocol.RoundCompletePayload{
		WinnerID: winnerID,
		Totals:   totals,
	}))
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgLobbyUpdate, protocol.LobbyUpdatePayload{
		Players: e.room.PlayerInfos(),
	}))
}

// GameComplete announces the winner and reports win/loss increments to
// the profile store.
func (e *roomEvents) GameComplete(winnerID string, totals map[string]int) {
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgGameComplete, protocol.GameCompletePayload{
		WinnerID: winnerID,
		Totals:   totals,
	}))
	e.room.SetState(room.StateFinished)

	if e.handler.store == nil {
		return
	}
	results := make(map[string]bool)
	for _, id := range e.room.MemberIDs() {
		if m := e.room.Member(id); m != nil {
			results[m.Client.GetName()] = id == winnerID
		}
	}
	go func() {
		ctx := context.Background()
		for username, won := range results {
			if err := e.handler.store.RecordGameResult(ctx, username, won); err != nil {
				// Unregistered guests have no profile; that is fine.
				logger.LogInfo("no game result recorded for %s: %v", username, err)
			}
		}
	}()
}

// broadcastCounts pushes fresh card counts after any hand mutation.
func (e *roomEvents) broadcastCounts() {
	counts := make(map[string]int)
	for _, info := range e.room.PlayerInfos() {
		counts[info.ID] = info.CardCount
	}
	e.room.Broadcast(protocol.MustNewMessage(protocol.MsgCardCount, protocol.CardCountPayload{
		Counts: counts,
	}))
}
