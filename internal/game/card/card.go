package card

import "strconv"

// Suit identifies a card's suit. Jokers carry NoSuit.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	NoSuit
)

// suitSymbols maps suits to display symbols.
var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
	NoSuit:   "",
}

// suitNames maps suits to wire names.
var suitNames = map[Suit]string{
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
	Spades:   "spades",
	NoSuit:   "none",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Name returns the wire name of the suit.
func (s Suit) Name() string {
	return suitNames[s]
}

// SuitFromName parses a wire suit name.
func SuitFromName(name string) (Suit, bool) {
	for s, n := range suitNames {
		if n == name {
			return s, true
		}
	}
	return NoSuit, false
}

// Rank is the numeric card rank. Aces are high (A = 14).
type Rank int

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	RankJoker
)

// rankNames maps ranks to wire names.
var rankNames = map[Rank]string{
	Rank10:    "10",
	RankJ:     "J",
	RankQ:     "Q",
	RankK:     "K",
	RankA:     "A",
	RankJoker: "JOKER",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// RankFromName parses a wire rank name.
func RankFromName(name string) (Rank, bool) {
	switch name {
	case "J":
		return RankJ, true
	case "Q":
		return RankQ, true
	case "K":
		return RankK, true
	case "A":
		return RankA, true
	case "JOKER":
		return RankJoker, true
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 2 || n > 10 {
		return 0, false
	}
	return Rank(n), true
}

// Color is the cosmetic card color. It only distinguishes the two
// pairs of jokers; for regular cards it follows the suit.
type Color int

const (
	Black Color = iota
	Red
)

// Card is an immutable card value. Two decks are in play, so equal
// (suit, rank) values may appear twice; containers treat them as a
// multiset.
type Card struct {
	Suit  Suit
	Rank  Rank
	Color Color
}

// IsJoker reports whether the card is one of the four jokers.
func (c Card) IsJoker() bool {
	return c.Rank == RankJoker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	return c.Rank.String() + c.Suit.String()
}
