package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a suit in a deck of cards
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var (
	suitNames  = []string{"hearts", "diamonds", "clubs", "spades"}
	suitGlyphs = []string{"♥", "♦", "♣", "♠"}
)

// Suits lists every suit in deck order
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

func (s Suit) valid() bool {
	return s >= Hearts && s <= Spades
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// MarshalText encodes the suit by name
func (s Suit) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(s.String()), nil
}

// Glyph returns the suit symbol
func (s Suit) Glyph() string {
	if !s.valid() {
		return "?"
	}
	return suitGlyphs[s]
}

// Color returns the colour class of the suit
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// ParseSuit looks up a suit by its name
func ParseSuit(name string) (Suit, bool) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), true
		}
	}
	return 0, false
}

// Color represents the colour class of a suit
type Color int

const (
	Red Color = iota
	Black
)

var colorNames = []string{"red", "black"}

func (c Color) String() string {
	if c != Red && c != Black {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// MarshalText encodes the colour by name
func (c Color) MarshalText() ([]byte, error) {
	if c != Red && c != Black {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

// ParseColor looks up a colour by its name
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return 0, false
}

// Rank represents a rank in a deck of cards
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankLabels = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Ranks lists every rank from Ace to King
func Ranks() []Rank {
	ranks := make([]Rank, 0, len(rankLabels))
	for r := Ace; r <= King; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

func (r Rank) valid() bool {
	return r >= Ace && r <= King
}

// Value is the numeric value of the rank: Ace is 1, Jack 11, Queen 12, King 13
func (r Rank) Value() int {
	return int(r)
}

func (r Rank) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankLabels[r-1]
}

// ParseRank looks up a rank by its label
func ParseRank(label string) (Rank, bool) {
	for i, l := range rankLabels {
		if l == label {
			return Rank(i + 1), true
		}
	}
	return 0, false
}

// Card is a playing card. Two cards are equal iff suit and rank are equal.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// Color returns the colour of the card's suit
func (c Card) Color() Color {
	return c.Suit.Color()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Glyph()
}

type cardJSON struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// MarshalJSON encodes the card with its display symbol and colour
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Suit:   c.Suit.String(),
		Rank:   c.Rank.String(),
		Symbol: c.Suit.Glyph(),
		Color:  c.Color().String(),
	})
}

// UnmarshalJSON decodes a card from its suit name and rank label
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	suit, ok := ParseSuit(raw.Suit)
	if !ok {
		return fmt.Errorf("unknown suit %q", raw.Suit)
	}
	rank, ok := ParseRank(raw.Rank)
	if !ok {
		return fmt.Errorf("unknown rank %q", raw.Rank)
	}
	*c = Card{Suit: suit, Rank: rank}
	return nil
}
