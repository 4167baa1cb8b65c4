package rules

import "github.com/minaorangina/luckydraw/deck"

// MatchResult is the outcome of resolving a hand. The zero value is NoMatch.
type MatchResult struct {
	Matched     bool   `json:"matched"`
	Description string `json:"description,omitempty"`
}

// NoMatch is returned when no condition holds
var NoMatch = MatchResult{}

// Matched builds a winning result
func Matched(description string) MatchResult {
	return MatchResult{Matched: true, Description: description}
}

func (m MatchResult) String() string {
	if !m.Matched {
		return "no match"
	}
	return "matched: " + m.Description
}

// Matches reports whether hand satisfies every constrained dimension of c
func Matches(hand []deck.Card, c Condition, today Date) bool {
	if c.Color != nil && !allColor(hand, *c.Color) {
		return false
	}
	if c.Suit != nil && !allSuit(hand, *c.Suit) {
		return false
	}
	if c.RankCondition != nil && !rankHolds(hand, *c.RankCondition, today) {
		return false
	}
	return true
}

// Resolve returns the description of the first condition hand satisfies
func Resolve(hand []deck.Card, conditions Conditions, today Date) MatchResult {
	for _, c := range conditions.list {
		if Matches(hand, c, today) {
			return Matched(c.Description)
		}
	}
	return NoMatch
}

// Resolve is shorthand for Resolve(hand, cs, today)
func (cs Conditions) Resolve(hand []deck.Card, today Date) MatchResult {
	return Resolve(hand, cs, today)
}

func allColor(hand []deck.Card, color deck.Color) bool {
	for _, c := range hand {
		if c.Color() != color {
			return false
		}
	}
	return true
}

func allSuit(hand []deck.Card, suit deck.Suit) bool {
	for _, c := range hand {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

func rankHolds(hand []deck.Card, rc RankCondition, today Date) bool {
	switch rc {
	case AllSame:
		return sameRank(hand)
	case CurrentDate:
		return spellsDate(hand, today)
	}
	// unrecognized patterns place no constraint
	return true
}

func sameRank(hand []deck.Card) bool {
	if len(hand) == 0 {
		return false
	}
	for _, c := range hand[1:] {
		if c.Rank != hand[0].Rank {
			return false
		}
	}
	return true
}

func spellsDate(hand []deck.Card, today Date) bool {
	digits := today.Digits()
	if len(digits) != len(hand) {
		return false
	}
	for i, d := range digits {
		want := d
		if want == 0 {
			want = 10
		}
		if hand[i].Rank.Value() != want {
			return false
		}
	}
	return true
}
