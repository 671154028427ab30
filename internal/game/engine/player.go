package engine

import (
	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/game/meld"
)

// Player is the durable game state of one seat: hand, committed melds
// and scores. Connection/session state lives in the transport layer,
// never here.
type Player struct {
	ID     string
	Name   string
	Avatar string

	Hand  *card.Hand
	Melds []meld.Meld

	RoundScore int // points from this round's melds, resets each round
	TotalScore int // cumulative across rounds

	GamesPlayed int
	GamesWon    int
}

func newPlayer(id, name, avatar string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Avatar: avatar,
		Hand:   card.NewHand(),
	}
}

// meldCards returns every card locked in the player's committed melds.
func (p *Player) meldCards() []card.Card {
	var cards []card.Card
	for _, m := range p.Melds {
		cards = append(cards, m.Cards...)
	}
	return cards
}

func (p *Player) resetForRound() {
	p.Hand = card.NewHand()
	p.Melds = nil
	p.RoundScore = 0
}
