// Package session tracks one player's sequence of draws.
//
// A Session starts in Initial. Each RequestDraw builds a fresh deck, shuffles
// it, takes a hand and resolves it against the session's conditions, moving
// to DrawnMatched or DrawnUnmatched. Retry is only offered after a win and
// runs the same cycle. There is no terminal state.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/rules"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrRetryNotAllowed = errors.New("retry is only allowed after a winning draw")
	ErrNoSource        = errors.New("session needs a random source")
)

// State is the draw outcome the session is showing
// initial -> nothing drawn yet
// matched -> last draw won
// unmatched -> last draw lost
type State int

const (
	Initial State = iota
	DrawnMatched
	DrawnUnmatched
)

var stateNames = []string{"initial", "matched", "unmatched"}

func (s State) String() string {
	if s < Initial || s > DrawnUnmatched {
		return ""
	}
	return stateNames[s]
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	for i, n := range stateNames {
		if n == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Draw is one completed shuffle, draw and resolve cycle
type Draw struct {
	Number int               `json:"draw"`
	Hand   []deck.Card       `json:"hand"`
	Result rules.MatchResult `json:"result"`
	Date   rules.Date        `json:"-"`
	State  State             `json:"state"`
}

// Renderer receives every completed draw
type Renderer interface {
	Render(sessionID string, d Draw)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(sessionID string, d Draw)

func (f RendererFunc) Render(sessionID string, d Draw) {
	f(sessionID, d)
}

// Renderers fans a draw out to every non-nil renderer, in order
func Renderers(rs ...Renderer) Renderer {
	return RendererFunc(func(sessionID string, d Draw) {
		for _, r := range rs {
			if r != nil {
				r.Render(sessionID, d)
			}
		}
	})
}

// NewID constructs a session ID
func NewID() string {
	return uuid.NewV4().String()
}

// Opts configures a Session
type Opts struct {
	ID         string
	Conditions rules.Conditions
	HandSize   int
	Source     deck.Source
	Clock      func() time.Time
	Renderer   Renderer
}

// Session is a draw state machine. It is safe for concurrent use.
type Session struct {
	id         string
	conditions rules.Conditions
	handSize   int
	clock      func() time.Time
	renderer   Renderer

	mu       sync.Mutex
	rng      deck.Source
	state    State
	lastHand []deck.Card
	result   rules.MatchResult
	draws    int
}

// New constructs a Session in the Initial state
func New(opts Opts) (*Session, error) {
	if opts.Source == nil {
		return nil, ErrNoSource
	}
	handSize := opts.HandSize
	if handSize == 0 {
		handSize = deck.DefaultHandSize
	}
	if handSize < 0 || handSize > len(deck.New()) {
		return nil, fmt.Errorf("%w: %d", deck.ErrInvalidHandSize, handSize)
	}
	id := opts.ID
	if id == "" {
		id = NewID()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Session{
		id:         id,
		conditions: opts.Conditions,
		handSize:   handSize,
		clock:      clock,
		renderer:   opts.Renderer,
		rng:        opts.Source,
		state:      Initial,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

// Conditions returns the rules this session resolves against
func (s *Session) Conditions() rules.Conditions {
	return s.conditions
}

// HandSize returns the number of cards per draw
func (s *Session) HandSize() int {
	return s.handSize
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HasDrawn reports whether at least one draw has happened
func (s *Session) HasDrawn() bool {
	return s.State() != Initial
}

// LastResult returns the most recent outcome, if any
func (s *Session) LastResult() (rules.MatchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state != Initial
}

// LastHand returns a copy of the most recent hand
func (s *Session) LastHand() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]deck.Card(nil), s.lastHand...)
}

// Draws returns how many draws have been made
func (s *Session) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// RequestDraw runs a full draw cycle from any state
func (s *Session) RequestDraw() (Draw, error) {
	s.mu.Lock()
	d, err := s.draw()
	s.mu.Unlock()
	if err != nil {
		return Draw{}, err
	}

	if s.renderer != nil {
		s.renderer.Render(s.id, d)
	}
	return d, nil
}

// Retry draws again after a win. From any other state it fails and the
// session is left as it was.
func (s *Session) Retry() (Draw, error) {
	s.mu.Lock()
	if s.state != DrawnMatched {
		state := s.state
		s.mu.Unlock()
		return Draw{}, fmt.Errorf("%w (state %s)", ErrRetryNotAllowed, state)
	}
	d, err := s.draw()
	s.mu.Unlock()
	if err != nil {
		return Draw{}, err
	}

	if s.renderer != nil {
		s.renderer.Render(s.id, d)
	}
	return d, nil
}

// draw must be called with mu held
func (s *Session) draw() (Draw, error) {
	shuffled := deck.Shuffle(deck.New(), s.rng)
	hand, err := deck.Draw(shuffled, s.handSize)
	if err != nil {
		return Draw{}, err
	}

	today := rules.DateOf(s.clock())
	result := s.conditions.Resolve(hand, today)

	s.lastHand = hand
	s.result = result
	s.draws++
	if result.Matched {
		s.state = DrawnMatched
	} else {
		s.state = DrawnUnmatched
	}

	return Draw{
		Number: s.draws,
		Hand:   append([]deck.Card(nil), hand...),
		Result: result,
		Date:   today,
		State:  s.state,
	}, nil
}

// Snapshot is a read-only view of a session
type Snapshot struct {
	ID         string             `json:"session_id"`
	State      State              `json:"state"`
	HasDrawn   bool               `json:"has_drawn"`
	Draws      int                `json:"draws"`
	LastResult *rules.MatchResult `json:"last_result,omitempty"`
	LastHand   []deck.Card        `json:"last_hand,omitempty"`
}

// Snapshot returns a consistent view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:       s.id,
		State:    s.state,
		HasDrawn: s.state != Initial,
		Draws:    s.draws,
	}
	if snap.HasDrawn {
		result := s.result
		snap.LastResult = &result
		snap.LastHand = append([]deck.Card(nil), s.lastHand...)
	}
	return snap
}
