package meld

import (
	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/card"
)

// Kind classifies a meld.
type Kind int

const (
	None Kind = iota
	Group
	Run
)

var kindNames = map[Kind]string{
	None:  "none",
	Group: "group",
	Run:   "run",
}

func (k Kind) String() string {
	return kindNames[k]
}

// KindFromName parses a wire kind name. Unknown names map to None
// (undeclared intent).
func KindFromName(name string) Kind {
	switch name {
	case "group":
		return Group
	case "run":
		return Run
	}
	return None
}

// rankCycle is the length of the cyclic rank sequence used for runs:
// 2..A with A adjacent to 2 again.
const rankCycle = 13

// Result is the outcome of validating a candidate selection.
type Result struct {
	Valid bool
	Kind  Kind
}

// Meld is a committed, validated laydown. It is immutable once built:
// cards cannot be reclaimed. Ranks holds the effective rank of every
// card, with jokers carrying the rank they substitute; that value is
// fixed here and used for scoring.
type Meld struct {
	Kind  Kind
	Cards []card.Card
	Ranks []card.Rank
}

// Len returns the number of cards in the meld.
func (m Meld) Len() int {
	return len(m.Cards)
}

// Classify reports whether cards form a legal meld and of which kind.
// declared is the player's stated intent; it only matters for the
// ambiguous case where the non-joker cards satisfy both tests (a
// single non-joker padded with jokers). Undeclared ambiguity resolves
// to Group.
func Classify(cards []card.Card, declared Kind) Result {
	jokers, naturals := split(cards)

	// A selection of jokers alone cannot be told apart as group or run.
	if len(naturals) == 0 {
		return Result{}
	}

	groupOK := groupPossible(naturals, len(jokers))
	_, runOK := runLayout(naturals, len(jokers))

	switch {
	case groupOK && runOK:
		if declared == Run {
			return Result{Valid: true, Kind: Run}
		}
		return Result{Valid: true, Kind: Group}
	case groupOK:
		return Result{Valid: true, Kind: Group}
	case runOK:
		return Result{Valid: true, Kind: Run}
	}
	return Result{}
}

// Build validates cards and commits them as a meld, recording each
// joker's substituted rank. Run melds come out in sequence order.
func Build(cards []card.Card, declared Kind) (Meld, error) {
	res := Classify(cards, declared)
	if !res.Valid {
		return Meld{}, apperrors.ErrInvalidMeld
	}

	jokers, naturals := split(cards)
	if res.Kind == Group {
		rank := naturals[0].Rank
		ordered := append([]card.Card(nil), cards...)
		ranks := make([]card.Rank, len(ordered))
		for i := range ranks {
			ranks[i] = rank
		}
		return Meld{Kind: Group, Cards: ordered, Ranks: ranks}, nil
	}

	seq, _ := runLayout(naturals, len(jokers))
	byRank := make(map[card.Rank]card.Card, len(naturals))
	for _, c := range naturals {
		byRank[c.Rank] = c
	}
	ordered := make([]card.Card, 0, len(seq))
	ranks := make([]card.Rank, 0, len(seq))
	ji := 0
	for _, r := range seq {
		if c, ok := byRank[r]; ok {
			ordered = append(ordered, c)
		} else {
			ordered = append(ordered, jokers[ji])
			ji++
		}
		ranks = append(ranks, r)
	}
	return Meld{Kind: Run, Cards: ordered, Ranks: ranks}, nil
}

func split(cards []card.Card) (jokers, naturals []card.Card) {
	for _, c := range cards {
		if c.IsJoker() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return jokers, naturals
}

// groupPossible: every non-joker shares one rank and jokers top the
// selection up to at least three cards.
func groupPossible(naturals []card.Card, jokers int) bool {
	rank := naturals[0].Rank
	for _, c := range naturals[1:] {
		if c.Rank != rank {
			return false
		}
	}
	return len(naturals)+jokers >= 3
}

// runLayout checks the run criteria and, when they hold, returns the
// full effective rank sequence with joker-filled gaps. The sequence is
// cyclic over the 13 ranks: the window may wrap (Q-K-A and A-2-3 are
// both legal), but never exceeds one full cycle. Jokers beyond the
// gaps extend the sequence past its high end.
func runLayout(naturals []card.Card, jokers int) ([]card.Rank, bool) {
	suit := naturals[0].Suit
	seen := make(map[card.Rank]bool, len(naturals))
	for _, c := range naturals {
		if c.Suit != suit {
			return nil, false
		}
		if seen[c.Rank] {
			// The same rank twice can never sit in one sequence.
			return nil, false
		}
		seen[c.Rank] = true
	}

	total := len(naturals) + jokers
	if total < 3 || total > rankCycle {
		return nil, false
	}

	// Find the minimal cyclic window holding every present rank: it
	// starts just after the largest cyclic gap between neighbors.
	positions := make([]bool, rankCycle)
	for r := range seen {
		positions[int(r-card.Rank2)] = true
	}
	maxGap, start := 0, 0
	prev := -1
	first := -1
	for p := range rankCycle {
		if !positions[p] {
			continue
		}
		if first == -1 {
			first = p
		} else if gap := p - prev; gap > maxGap {
			maxGap, start = gap, p
		}
		prev = p
	}
	if wrap := first + rankCycle - prev; wrap > maxGap {
		maxGap, start = wrap, first
	}

	span := rankCycle - maxGap + 1
	missing := span - len(naturals)
	if missing > jokers {
		return nil, false
	}

	seq := make([]card.Rank, 0, total)
	for i := range total {
		pos := (start + i) % rankCycle
		seq = append(seq, card.Rank(pos)+card.Rank2)
	}
	return seq, true
}
