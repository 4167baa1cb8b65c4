package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// DefaultHandSize is the number of cards drawn for one evaluation
const DefaultHandSize = 4

var ErrInvalidHandSize = errors.New("invalid hand size")

// Deck represents a deck of cards
type Deck []Card

// Source produces uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source seeded with seed
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRandomSource returns a Source seeded from crypto/rand
func NewRandomSource() (Source, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewSource(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// New creates a full deck of 52 cards, suit-major from hearts to spades
func New() Deck {
	cards := make(Deck, 0, len(suitNames)*len(rankLabels))
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle returns a random permutation of d. d itself is left untouched.
func Shuffle(d Deck, rng Source) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Draw returns the first n cards of a shuffled deck, in order
func Draw(shuffled Deck, n int) ([]Card, error) {
	if n < 0 || n > len(shuffled) {
		return nil, fmt.Errorf("%w: %d (deck has %d cards)", ErrInvalidHandSize, n, len(shuffled))
	}
	hand := make([]Card, n)
	copy(hand, shuffled[:n])
	return hand, nil
}
