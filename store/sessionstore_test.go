package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, id string) *session.Session {
	t.Helper()

	s, err := session.New(session.Opts{ID: id, Source: deck.NewSource(1)})
	require.NoError(t, err)
	return s
}

func TestInMemorySessionStore(t *testing.T) {
	t.Run("Constructor prevents nil struct members", func(t *testing.T) {
		store := NewInMemorySessionStore()
		assert.NotNil(t, store.sessions)
		assert.Empty(t, store.Sessions())
	})

	t.Run("prevents duplicate session IDs", func(t *testing.T) {
		store := NewInMemorySessionStore()
		sess := newSession(t, "thisISAnID")

		require.NoError(t, store.AddSession(sess))

		err := store.AddSession(sess)
		assert.True(t, errors.Is(err, ErrSessionExists))
	})

	t.Run("rejects nil sessions", func(t *testing.T) {
		store := NewInMemorySessionStore()
		assert.Equal(t, ErrNilSession, store.AddSession(nil))
	})

	t.Run("finds a stored session", func(t *testing.T) {
		store := NewInMemorySessionStore()
		sess := newSession(t, "some-session-id")
		require.NoError(t, store.AddSession(sess))

		found, err := store.FindSession("some-session-id")
		require.NoError(t, err)
		assert.Same(t, sess, found)
		assert.Equal(t, []string{"some-session-id"}, store.Sessions())
	})

	t.Run("Handles a non-existent session", func(t *testing.T) {
		store := NewInMemorySessionStore()
		found, err := store.FindSession("fake-id")

		assert.Nil(t, found)
		assert.True(t, errors.Is(err, ErrUnknownSessionID))
	})

	t.Run("removes sessions", func(t *testing.T) {
		store := NewInMemorySessionStore()
		require.NoError(t, store.AddSession(newSession(t, "gone")))

		require.NoError(t, store.RemoveSession("gone"))
		_, err := store.FindSession("gone")
		assert.True(t, errors.Is(err, ErrUnknownSessionID))

		assert.True(t, errors.Is(store.RemoveSession("gone"), ErrUnknownSessionID))
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		store := NewInMemorySessionStore()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("session-%d", i)
				sess, err := session.New(session.Opts{ID: id, Source: deck.NewSource(int64(i))})
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, store.AddSession(sess))
				_, err = store.FindSession(id)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.Len(t, store.Sessions(), 50)
	})
}
