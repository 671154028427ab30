package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/protocol"
)

func TestCardToInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		card     card.Card
		expected protocol.CardInfo
	}{
		{
			name:     "Number card",
			card:     card.Card{Suit: card.Spades, Rank: card.Rank7},
			expected: protocol.CardInfo{Suit: "spades", Rank: "7"},
		},
		{
			name:     "Face card",
			card:     card.Card{Suit: card.Hearts, Rank: card.RankQ, Color: card.Red},
			expected: protocol.CardInfo{Suit: "hearts", Rank: "Q"},
		},
		{
			name:     "Black joker",
			card:     card.Card{Suit: card.NoSuit, Rank: card.RankJoker, Color: card.Black},
			expected: protocol.CardInfo{Suit: "black", Rank: "JOKER"},
		},
		{
			name:     "Red joker",
			card:     card.Card{Suit: card.NoSuit, Rank: card.RankJoker, Color: card.Red},
			expected: protocol.CardInfo{Suit: "red", Rank: "JOKER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CardToInfo(tt.card))
		})
	}
}

func TestCardRoundTripMatchesEngineValues(t *testing.T) {
	t.Parallel()

	// Every card in the deck survives the wire unchanged, color included.
	for _, c := range card.NewDeck().Cards() {
		parsed, err := CardFromInfo(CardToInfo(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestCardFromInfoRejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info protocol.CardInfo
	}{
		{name: "Bad rank", info: protocol.CardInfo{Suit: "spades", Rank: "Z"}},
		{name: "Bad suit", info: protocol.CardInfo{Suit: "stars", Rank: "7"}},
		{name: "Suitless non-joker", info: protocol.CardInfo{Suit: "none", Rank: "7"}},
		{name: "Joker with bad color", info: protocol.CardInfo{Suit: "spades", Rank: "JOKER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := CardFromInfo(tt.info)
			assert.Error(t, err)
		})
	}
}

func TestCardsFromInfosFailsFast(t *testing.T) {
	t.Parallel()

	_, err := CardsFromInfos([]protocol.CardInfo{
		{Suit: "spades", Rank: "7"},
		{Suit: "stars", Rank: "8"},
	})
	assert.Error(t, err)
}
