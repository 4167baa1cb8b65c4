// Package rules decides whether a drawn hand wins.
//
// A Condition is a declarative rule authored outside the program. Each of its
// three dimensions (colour, suit, rank pattern) is optional; a nil field
// places no constraint on the hand. Conditions are resolved in the order they
// were supplied and the first one the hand satisfies wins.
package rules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/minaorangina/luckydraw/deck"
)

// RankCondition names a rank pattern
type RankCondition string

const (
	// AllSame holds when every card shares the first card's rank
	AllSame RankCondition = "all_same"
	// CurrentDate holds when the ranks spell today's month and day
	CurrentDate RankCondition = "current_date"
)

// Known reports whether the pattern is one the evaluator understands
func (rc RankCondition) Known() bool {
	return rc == AllSame || rc == CurrentDate
}

// Condition is a winning rule. Nil fields are wildcards.
type Condition struct {
	Color         *deck.Color    `json:"color" yaml:"color"`
	Suit          *deck.Suit     `json:"suit" yaml:"suit"`
	RankCondition *RankCondition `json:"rank_condition" yaml:"rank_condition"`
	Description   string         `json:"description" yaml:"description"`
}

// ColorIs returns a pointer for use in Condition literals
func ColorIs(c deck.Color) *deck.Color { return &c }

// SuitIs returns a pointer for use in Condition literals
func SuitIs(s deck.Suit) *deck.Suit { return &s }

// RankIs returns a pointer for use in Condition literals
func RankIs(rc RankCondition) *RankCondition { return &rc }

func (c Condition) String() string {
	return fmt.Sprintf("{color: %s, suit: %s, rank_condition: %s, description: %q}",
		optional(c.Color), optional(c.Suit), optional(c.RankCondition), c.Description)
}

func optional[T any](v *T) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprint(*v)
}

// Conditions is an ordered, read-only snapshot of rules
type Conditions struct {
	list []Condition
}

// NewConditions copies cs into a snapshot
func NewConditions(cs ...Condition) Conditions {
	list := make([]Condition, len(cs))
	for i, c := range cs {
		list[i] = c.clone()
	}
	return Conditions{list: list}
}

// Len returns the number of conditions
func (cs Conditions) Len() int {
	return len(cs.list)
}

// At returns a copy of the i-th condition
func (cs Conditions) At(i int) Condition {
	return cs.list[i].clone()
}

// All returns a copy of every condition in order
func (cs Conditions) All() []Condition {
	out := make([]Condition, len(cs.list))
	for i, c := range cs.list {
		out[i] = c.clone()
	}
	return out
}

func (c Condition) clone() Condition {
	out := Condition{Description: c.Description}
	if c.Color != nil {
		out.Color = ColorIs(*c.Color)
	}
	if c.Suit != nil {
		out.Suit = SuitIs(*c.Suit)
	}
	if c.RankCondition != nil {
		out.RankCondition = RankIs(*c.RankCondition)
	}
	return out
}

// Date is a calendar day without a year
type Date struct {
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location
func DateOf(t time.Time) Date {
	return Date{Month: t.Month(), Day: t.Day()}
}

// Digits concatenates month and day as decimal digits, e.g. 12/13 gives 1,2,1,3
func (d Date) Digits() []int {
	s := strconv.Itoa(int(d.Month)) + strconv.Itoa(d.Day)
	digits := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		digits = append(digits, int(r-'0'))
	}
	return digits
}

func (d Date) String() string {
	return fmt.Sprintf("%d/%d", int(d.Month), d.Day)
}
