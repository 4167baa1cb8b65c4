package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/luckydraw/session"
)

var (
	ErrUnknownSessionID = errors.New("unknown session ID")
	ErrSessionExists    = errors.New("session already exists")
	ErrNilSession       = errors.New("session is nil")
)

type SessionStore interface {
	FindSession(sessionID string) (*session.Session, error)
	AddSession(s *session.Session) error
	RemoveSession(sessionID string) error
	Sessions() []string
}

// InMemorySessionStore maps session id to session
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewInMemorySessionStore constructs an InMemorySessionStore
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: map[string]*session.Session{},
	}
}

func (s *InMemorySessionStore) FindSession(ID string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found, ok := s.sessions[ID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionID, ID)
	}
	return found, nil
}

func (s *InMemorySessionStore) AddSession(sess *session.Session) error {
	if sess == nil {
		return ErrNilSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrSessionExists, sess.ID())
	}
	s.sessions[sess.ID()] = sess
	return nil
}

func (s *InMemorySessionStore) RemoveSession(ID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[ID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSessionID, ID)
	}
	delete(s.sessions, ID)
	return nil
}

// Sessions lists the IDs of every stored session
func (s *InMemorySessionStore) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
