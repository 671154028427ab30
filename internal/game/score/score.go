// Package score converts melds and leftover hands into round points
// and penalty points.
package score

import (
	"github.com/Fesius1/Grand/internal/game/card"
	"github.com/Fesius1/Grand/internal/game/meld"
)

const (
	lowCardPoints  = 5  // ranks 2–9
	highCardPoints = 10 // ranks 10–A
	jokerPenalty   = 30 // joker left in hand
	aceGroupBonus  = 25 // per natural ace in an all-ace group meld

	// RoundWinBonus is added to the round winner's total on top of
	// their meld points.
	RoundWinBonus = 30
)

// rankPoints returns the band value of an effective rank. Jokers are
// never scored directly; their substituted rank is recorded at meld
// commit time.
func rankPoints(r card.Rank) int {
	if r >= card.Rank10 {
		return highCardPoints
	}
	return lowCardPoints
}

// MeldPoints returns the points a committed meld is worth: the band
// value of every card at its effective rank, plus the ace bonus for an
// all-ace group (25 per natural ace, stacking with the base points).
func MeldPoints(m meld.Meld) int {
	points := 0
	for _, r := range m.Ranks {
		points += rankPoints(r)
	}
	if m.Kind == meld.Group && len(m.Ranks) > 0 && m.Ranks[0] == card.RankA {
		for _, c := range m.Cards {
			if !c.IsJoker() {
				points += aceGroupBonus
			}
		}
	}
	return points
}

// MeldTotal sums the points of a player's committed melds.
func MeldTotal(melds []meld.Meld) int {
	total := 0
	for _, m := range melds {
		total += MeldPoints(m)
	}
	return total
}

// HandPenalty returns the (negative) penalty for cards left in a hand
// at round end: −5 for ranks 2–9, −10 for 10–A, −30 per joker.
func HandPenalty(cards []card.Card) int {
	penalty := 0
	for _, c := range cards {
		if c.IsJoker() {
			penalty -= jokerPenalty
		} else {
			penalty -= rankPoints(c.Rank)
		}
	}
	return penalty
}

// RoundDelta returns the total-score change for one player at round
// end. The winner collects meld points plus the win bonus; everyone
// else collects their meld points net of their hand penalty.
func RoundDelta(melds []meld.Meld, hand []card.Card, won bool) int {
	points := MeldTotal(melds)
	if won {
		return points + RoundWinBonus
	}
	return points + HandPenalty(hand)
}
