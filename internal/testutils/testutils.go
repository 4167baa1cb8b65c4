// Package testutils holds deterministic stand-ins shared by package tests.
package testutils

import (
	"testing"
	"time"

	"github.com/minaorangina/luckydraw/deck"
)

// IdentitySource always picks the highest index, so Shuffle leaves the deck in order
type IdentitySource struct{}

func (IdentitySource) Intn(n int) int {
	return n - 1
}

// CountingSource wraps a Source and records how many numbers were drawn
type CountingSource struct {
	Source deck.Source
	Calls  int
}

func (c *CountingSource) Intn(n int) int {
	c.Calls++
	return c.Source.Intn(n)
}

// FixedClock returns a clock stuck on the given month and day
func FixedClock(month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, month, day, 12, 0, 0, 0, time.UTC)
	}
}

// Hand builds cards from short labels such as "A♥" or "10♠"
func Hand(t *testing.T, labels ...string) []deck.Card {
	t.Helper()

	cards := make([]deck.Card, 0, len(labels))
	for _, label := range labels {
		r := []rune(label)
		if len(r) < 2 {
			t.Fatalf("bad card label %q", label)
		}
		glyph := string(r[len(r)-1])
		rank, ok := deck.ParseRank(string(r[:len(r)-1]))
		if !ok {
			t.Fatalf("bad rank in card label %q", label)
		}
		var suit deck.Suit
		found := false
		for _, s := range deck.Suits() {
			if s.Glyph() == glyph {
				suit, found = s, true
				break
			}
		}
		if !found {
			t.Fatalf("bad suit in card label %q", label)
		}
		cards = append(cards, deck.NewCard(rank, suit))
	}
	return cards
}
