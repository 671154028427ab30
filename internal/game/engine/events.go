package engine

import (
	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/game/meld"
)

// Events receives notifications of engine state changes. The transport
// layer implements it to fan messages out to the room; the engine
// itself never talks to sockets or storage.
type Events interface {
	// HandsDealt fires after every deal with each player's new hand.
	HandsDealt(hands map[string][]card.Card)
	// CardDrawn fires when a player draws a single card from the deck
	// or the top of the discard pile. The card is private to the
	// drawing player.
	CardDrawn(playerID string, c card.Card, fromDiscard bool, deckRemaining int)
	// DiscardTaken fires when a player picks up from the discard pile
	// at an index; the taken cards are public.
	DiscardTaken(playerID string, index int, cards []card.Card)
	// MeldCommitted fires when a laydown is accepted.
	MeldCommitted(playerID string, m meld.Meld, points, roundScore int)
	// CardDiscarded fires when a player ends the turn with a discard.
	CardDiscarded(playerID string, c card.Card)
	// TurnChanged fires whenever the active player or phase changes.
	TurnChanged(playerID string, phase Phase)
	// RoundComplete fires with the updated cumulative totals.
	RoundComplete(winnerID string, totals map[string]int)
	// GameComplete fires once a player's total crosses the winning
	// threshold.
	GameComplete(winnerID string, totals map[string]int)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) HandsDealt(map[string][]card.Card)         {}
func (NopEvents) CardDrawn(string, card.Card, bool, int)    {}
func (NopEvents) DiscardTaken(string, int, []card.Card)     {}
func (NopEvents) MeldCommitted(string, meld.Meld, int, int) {}
func (NopEvents) CardDiscarded(string, card.Card)           {}
func (NopEvents) TurnChanged(string, Phase)                 {}
func (NopEvents) RoundComplete(string, map[string]int)      {}
func (NopEvents) GameComplete(string, map[string]int)       {}
