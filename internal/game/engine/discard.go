package engine

import (
	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/card"
)

// DiscardPile is the ordered pile of discarded cards. Cards are
// appended at the discard end; removal is either the top card alone or
// a chosen card together with everything discarded after it.
type DiscardPile struct {
	cards []card.Card
}

// NewDiscardPile returns an empty pile.
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{}
}

// Push appends a discarded card.
func (p *DiscardPile) Push(c card.Card) {
	p.cards = append(p.cards, c)
}

// DrawTop removes and returns the most recently discarded card.
func (p *DiscardPile) DrawTop() (card.Card, error) {
	if len(p.cards) == 0 {
		return card.Card{}, apperrors.ErrEmptyPile
	}
	top := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return top, nil
}

// TakeFrom removes the card at index and every card discarded after
// it, returned oldest-discarded-first.
func (p *DiscardPile) TakeFrom(index int) ([]card.Card, error) {
	if index < 0 || index >= len(p.cards) {
		return nil, apperrors.ErrIndexOutOfRange
	}
	taken := make([]card.Card, len(p.cards)-index)
	copy(taken, p.cards[index:])
	p.cards = p.cards[:index]
	return taken, nil
}

// Len returns the number of cards in the pile.
func (p *DiscardPile) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the pile, oldest discard first.
func (p *DiscardPile) Cards() []card.Card {
	out := make([]card.Card, len(p.cards))
	copy(out, p.cards)
	return out
}
