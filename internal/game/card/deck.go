package card

import (
	"math/rand/v2"

	"github.com/Fesius1/Grand/internal/apperrors"
)

// DeckSize is the full deck: two copies of each standard card plus
// four jokers.
const DeckSize = 2*52 + 4

// Deck is an ordered sequence of cards drawn from the top (the end of
// the slice). It is built once per round and replaced at round reset.
type Deck struct {
	cards []Card
}

// NewDeck builds an unshuffled 108-card deck: two copies of every
// (suit, rank) combination and four jokers, two black and two red.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for s := Hearts; s <= Spades; s++ {
		color := Black
		if s == Hearts || s == Diamonds {
			color = Red
		}
		for r := Rank2; r <= RankA; r++ {
			cards = append(cards, Card{Suit: s, Rank: r, Color: color})
			cards = append(cards, Card{Suit: s, Rank: r, Color: color})
		}
	}
	for range 2 {
		cards = append(cards, Card{Suit: NoSuit, Rank: RankJoker, Color: Black})
		cards = append(cards, Card{Suit: NoSuit, Rank: RankJoker, Color: Red})
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the deck in place with Fisher–Yates, walking from
// the last index down and swapping with a uniformly chosen earlier
// index. Each of the n! permutations is equally likely.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top n cards. Reshuffling the discard
// pile back into an exhausted deck is not implemented; callers get
// ErrDeckExhausted and must end the round.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, apperrors.ErrDeckExhausted
	}
	top := len(d.cards) - n
	drawn := make([]Card, n)
	copy(drawn, d.cards[top:])
	d.cards = d.cards[:top]
	return drawn, nil
}

// DrawOne removes and returns the top card.
func (d *Deck) DrawOne() (Card, error) {
	drawn, err := d.Draw(1)
	if err != nil {
		return Card{}, err
	}
	return drawn[0], nil
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
