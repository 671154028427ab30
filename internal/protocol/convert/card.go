// Package convert maps engine card values to and from their wire
// representation.
package convert

import (
	"fmt"

	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/protocol"
)

// Jokers carry no suit in the engine; on the wire they show their
// cosmetic color instead, matching the deck's two black and two red
// jokers.
const (
	jokerSuitBlack = "black"
	jokerSuitRed   = "red"
)

// CardToInfo converts an engine card to its wire form.
func CardToInfo(c card.Card) protocol.CardInfo {
	if c.IsJoker() {
		suit := jokerSuitBlack
		if c.Color == card.Red {
			suit = jokerSuitRed
		}
		return protocol.CardInfo{Suit: suit, Rank: card.RankJoker.String()}
	}
	return protocol.CardInfo{Suit: c.Suit.Name(), Rank: c.Rank.String()}
}

// CardFromInfo parses a wire card. Colors are derived, so the result
// compares equal to the engine's card value.
func CardFromInfo(info protocol.CardInfo) (card.Card, error) {
	rank, ok := card.RankFromName(info.Rank)
	if !ok {
		return card.Card{}, fmt.Errorf("unknown rank %q", info.Rank)
	}

	if rank == card.RankJoker {
		switch info.Suit {
		case jokerSuitBlack:
			return card.Card{Suit: card.NoSuit, Rank: card.RankJoker, Color: card.Black}, nil
		case jokerSuitRed:
			return card.Card{Suit: card.NoSuit, Rank: card.RankJoker, Color: card.Red}, nil
		}
		return card.Card{}, fmt.Errorf("unknown joker color %q", info.Suit)
	}

	suit, ok := card.SuitFromName(info.Suit)
	if !ok || suit == card.NoSuit {
		return card.Card{}, fmt.Errorf("unknown suit %q", info.Suit)
	}
	color := card.Black
	if suit == card.Hearts || suit == card.Diamonds {
		color = card.Red
	}
	return card.Card{Suit: suit, Rank: rank, Color: color}, nil
}

// CardsToInfos converts a card slice to wire form.
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// CardsFromInfos parses a wire card slice.
func CardsFromInfos(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := CardFromInfo(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
