// Package engine implements the turn-based rummy engine for one game
// room: deck, hands, discard pile, meld validation hooks, round
// progression and the cumulative game score. One engine instance is a
// single sequential state machine; callers serialize access per room.
package engine

import (
	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/game/meld"
	"github.com/Fesius1/Grand/internal/game/score"
)

// Phase is the state of the round state machine.
type Phase int

const (
	PhaseWaiting       Phase = iota // before the first deal
	PhaseDraw                       // active player must draw
	PhaseMeldOrDiscard              // active player may meld, must discard
	PhaseFinished                   // game over
)

var phaseNames = map[Phase]string{
	PhaseWaiting:       "waiting",
	PhaseDraw:          "draw",
	PhaseMeldOrDiscard: "meld_or_discard",
	PhaseFinished:      "finished",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// DrawSource selects where a single-card draw comes from.
type DrawSource int

const (
	SourceDeck DrawSource = iota
	SourceDiscardTop
)

// Rules holds the tunable game parameters.
type Rules struct {
	HandSize       int // cards dealt per player
	WinningScore   int // game ends when a total reaches this
	MinPickupScore int // round points required to pick up from the pile
}

// DefaultRules returns the standard rules: 12-card hands, game to
// 1000, discard pickup unlocked at 30 round points.
func DefaultRules() Rules {
	return Rules{HandSize: 12, WinningScore: 1000, MinPickupScore: 30}
}

// Game is the engine for one room: the current round's deck, pile and
// hands plus cumulative totals across rounds.
type Game struct {
	rules  Rules
	events Events

	players []*Player
	deck    *card.Deck
	pile    *DiscardPile

	turn    int // index of the active player
	start   int // seat that opens the round, rotates every round
	phase   Phase
	started bool
}

// New creates an engine with the given rules. A nil events sink
// discards all events.
func New(rules Rules, events Events) *Game {
	if rules.HandSize == 0 {
		rules.HandSize = 12
	}
	if rules.WinningScore == 0 {
		rules.WinningScore = 1000
	}
	if rules.MinPickupScore == 0 {
		rules.MinPickupScore = 30
	}
	if events == nil {
		events = NopEvents{}
	}
	return &Game{rules: rules, events: events, phase: PhaseWaiting}
}

// AddPlayer seats a player. Identity and display metadata come from
// the caller; the engine holds no durable profile state.
func (g *Game) AddPlayer(id, name, avatar string) error {
	if g.started {
		return apperrors.ErrGameStarted
	}
	for _, p := range g.players {
		if p.ID == id {
			p.Name, p.Avatar = name, avatar
			return nil
		}
	}
	g.players = append(g.players, newPlayer(id, name, avatar))
	return nil
}

// Start begins the game: first round is dealt, first seat opens.
func (g *Game) Start() error {
	if g.started {
		return apperrors.ErrGameStarted
	}
	if len(g.players) < 2 {
		return apperrors.ErrNotEnoughPlayers
	}
	g.started = true
	g.dealRound()
	return nil
}

// dealRound builds a fresh shuffled deck and pile, clears round state
// and deals a hand to every player in turn order.
func (g *Game) dealRound() {
	g.deck = card.NewDeck()
	g.deck.Shuffle()
	g.pile = NewDiscardPile()

	hands := make(map[string][]card.Card, len(g.players))
	for i := range g.players {
		p := g.players[(g.start+i)%len(g.players)]
		p.resetForRound()
		dealt, _ := g.deck.Draw(g.rules.HandSize)
		p.Hand.AddAll(dealt)
		hands[p.ID] = p.Hand.Cards()
	}

	g.turn = g.start
	g.phase = PhaseDraw
	g.events.HandsDealt(hands)
	g.events.TurnChanged(g.activePlayer().ID, g.phase)
}

func (g *Game) activePlayer() *Player {
	return g.players[g.turn]
}

// requireTurn checks that the acting player exists, is the active
// player and that the round is in the expected phase. Violations leave
// state untouched.
func (g *Game) requireTurn(playerID string, phase Phase) (*Player, error) {
	if !g.started || g.phase == PhaseFinished {
		return nil, apperrors.ErrGameNotStart
	}
	p := g.activePlayer()
	if p.ID != playerID {
		return nil, apperrors.ErrNotYourTurn
	}
	if g.phase != phase {
		return nil, apperrors.ErrWrongPhase
	}
	return p, nil
}

// Draw takes one card from the deck top or the top of the discard
// pile and moves the turn into the meld-or-discard phase.
func (g *Game) Draw(playerID string, source DrawSource) (card.Card, error) {
	p, err := g.requireTurn(playerID, PhaseDraw)
	if err != nil {
		return card.Card{}, err
	}

	var c card.Card
	switch source {
	case SourceDiscardTop:
		c, err = g.pile.DrawTop()
	default:
		c, err = g.deck.DrawOne()
	}
	if err != nil {
		return card.Card{}, err
	}

	p.Hand.Add(c)
	g.phase = PhaseMeldOrDiscard
	g.events.CardDrawn(p.ID, c, source == SourceDiscardTop, g.deck.Len())
	g.events.TurnChanged(p.ID, g.phase)
	return c, nil
}

// DrawFromDiscard takes the pile card at index and everything
// discarded after it. Gated on the player's round score so high-value
// discards cannot be swept early.
func (g *Game) DrawFromDiscard(playerID string, index int) ([]card.Card, error) {
	p, err := g.requireTurn(playerID, PhaseDraw)
	if err != nil {
		return nil, err
	}
	if p.RoundScore < g.rules.MinPickupScore {
		return nil, apperrors.ErrInsufficientScore
	}

	taken, err := g.pile.TakeFrom(index)
	if err != nil {
		return nil, err
	}

	p.Hand.AddAll(taken)
	g.phase = PhaseMeldOrDiscard
	g.events.DiscardTaken(p.ID, index, taken)
	g.events.TurnChanged(p.ID, g.phase)
	return taken, nil
}

// ProposeMeld validates the selected cards as a laydown and commits
// them. A committed meld is immutable and its points are credited to
// the player's round score at once. Emptying the hand ends the round.
func (g *Game) ProposeMeld(playerID string, cards []card.Card, declared meld.Kind) (meld.Meld, error) {
	p, err := g.requireTurn(playerID, PhaseMeldOrDiscard)
	if err != nil {
		return meld.Meld{}, err
	}
	if !p.Hand.ContainsAll(cards) {
		return meld.Meld{}, apperrors.ErrCardNotInHand
	}

	m, err := meld.Build(cards, declared)
	if err != nil {
		return meld.Meld{}, err
	}

	_ = p.Hand.RemoveAll(cards)
	p.Melds = append(p.Melds, m)
	points := score.MeldPoints(m)
	p.RoundScore += points
	g.events.MeldCommitted(p.ID, m, points, p.RoundScore)

	if p.Hand.Len() == 0 {
		g.finishRound(p)
	}
	return m, nil
}

// Discard moves a card from the player's hand to the pile, ending the
// turn. Discarding the last card ends the round.
func (g *Game) Discard(playerID string, c card.Card) error {
	p, err := g.requireTurn(playerID, PhaseMeldOrDiscard)
	if err != nil {
		return err
	}
	if err := p.Hand.Remove(c); err != nil {
		return err
	}

	g.pile.Push(c)
	g.events.CardDiscarded(p.ID, c)

	if p.Hand.Len() == 0 {
		g.finishRound(p)
		return nil
	}

	g.turn = (g.turn + 1) % len(g.players)
	g.phase = PhaseDraw
	g.events.TurnChanged(g.activePlayer().ID, g.phase)
	return nil
}

// ReorderHand replaces the display order of the player's own hand. It
// is allowed at any time and changes nothing but presentation.
func (g *Game) ReorderHand(playerID string, newOrder []card.Card) error {
	p := g.Player(playerID)
	if p == nil {
		return apperrors.ErrCardNotInHand
	}
	return p.Hand.Reorder(newOrder)
}

// finishRound scores the round, updates totals and either ends the
// game or rotates the opening seat and deals again.
func (g *Game) finishRound(winner *Player) {
	totals := make(map[string]int, len(g.players))
	for _, p := range g.players {
		p.TotalScore += score.RoundDelta(p.Melds, p.Hand.Cards(), p == winner)
		totals[p.ID] = p.TotalScore
	}
	g.events.RoundComplete(winner.ID, totals)

	if champion := g.gameWinner(winner); champion != nil {
		g.phase = PhaseFinished
		for _, p := range g.players {
			p.GamesPlayed++
		}
		champion.GamesWon++
		g.events.GameComplete(champion.ID, totals)
		return
	}

	g.start = (g.start + 1) % len(g.players)
	g.dealRound()
}

// gameWinner returns the game's winner if any total has reached the
// threshold: the highest such total, with the round winner taking
// precedence on a tie.
func (g *Game) gameWinner(roundWinner *Player) *Player {
	var best *Player
	for _, p := range g.players {
		if p.TotalScore < g.rules.WinningScore {
			continue
		}
		switch {
		case best == nil, p.TotalScore > best.TotalScore:
			best = p
		case p.TotalScore == best.TotalScore && p == roundWinner:
			best = p
		}
	}
	return best
}

// --- accessors ---

// Player returns the seated player with the given ID, or nil.
func (g *Game) Player(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Players returns the seating order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// ActivePlayerID returns the ID of the player whose turn it is, or ""
// before the first deal.
func (g *Game) ActivePlayerID() string {
	if !g.started || len(g.players) == 0 {
		return ""
	}
	return g.activePlayer().ID
}

// Phase returns the current round phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Started reports whether the first round has been dealt.
func (g *Game) Started() bool {
	return g.started
}

// DeckLen returns the cards left in the deck.
func (g *Game) DeckLen() int {
	if g.deck == nil {
		return 0
	}
	return g.deck.Len()
}

// Pile returns the discard pile.
func (g *Game) Pile() *DiscardPile {
	return g.pile
}

// CardsInPlay counts every card in the deck, pile, hands and committed
// melds. It stays at the full deck size for the whole round.
func (g *Game) CardsInPlay() int {
	if g.deck == nil {
		return 0
	}
	total := g.deck.Len() + g.pile.Len()
	for _, p := range g.players {
		total += p.Hand.Len() + len(p.meldCards())
	}
	return total
}
