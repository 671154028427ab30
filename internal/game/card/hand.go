package card

import (
	"github.com/Fesius1/Grand/internal/apperrors"
)

// Hand is a player's held cards. Order is player-controlled and only
// meaningful for display; validity checks treat the hand as a multiset.
type Hand struct {
	cards []Card
}

// NewHand returns an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Add appends a card to the hand.
func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
}

// AddAll appends cards in the given order.
func (h *Hand) AddAll(cards []Card) {
	h.cards = append(h.cards, cards...)
}

// Remove removes one instance of c. Duplicate-valued cards are distinct
// instances, so a single call removes a single copy.
func (h *Hand) Remove(c Card) error {
	for i := range h.cards {
		if h.cards[i] == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCardNotInHand
}

// RemoveAll removes one instance per requested card. The hand is left
// unchanged unless every card is present.
func (h *Hand) RemoveAll(cards []Card) error {
	if !h.ContainsAll(cards) {
		return apperrors.ErrCardNotInHand
	}
	for _, c := range cards {
		_ = h.Remove(c)
	}
	return nil
}

// Contains reports whether at least one instance of c is held.
func (h *Hand) Contains(c Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the hand holds the full multiset of
// cards, counting duplicates.
func (h *Hand) ContainsAll(cards []Card) bool {
	need := countCards(cards)
	have := countCards(h.cards)
	for c, n := range need {
		if have[c] < n {
			return false
		}
	}
	return true
}

// Reorder replaces the hand's display order. The new order must be a
// permutation of the current hand.
func (h *Hand) Reorder(newOrder []Card) error {
	if len(newOrder) != len(h.cards) || !h.ContainsAll(newOrder) {
		return apperrors.ErrCardNotInHand
	}
	h.cards = append(h.cards[:0:0], newOrder...)
	return nil
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the hand in display order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

func countCards(cards []Card) map[Card]int {
	counts := make(map[Card]int, len(cards))
	for _, c := range cards {
		counts[c]++
	}
	return counts
}
