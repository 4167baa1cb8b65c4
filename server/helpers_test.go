package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/history"
	"github.com/minaorangina/luckydraw/internal/testutils"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/store"
	"github.com/stretchr/testify/require"
)

var (
	alwaysWins = rules.NewConditions(rules.Condition{Description: "winner"})
	neverWins  = rules.NewConditions(rules.Condition{
		Color:       rules.ColorIs(deck.Black),
		Suit:        rules.SuitIs(deck.Hearts),
		Description: "impossible",
	})
)

func seededSources() func() (deck.Source, error) {
	var seed int64
	return func() (deck.Source, error) {
		seed++
		return deck.NewSource(seed), nil
	}
}

func newTestServer(t *testing.T, conditions rules.Conditions, hist *history.Store) *DrawServer {
	t.Helper()

	return NewServer(store.NewInMemorySessionStore(), ServerOpts{
		Conditions: conditions,
		NewSource:  seededSources(),
		Clock:      testutils.FixedClock(time.December, 13),
		History:    hist,
	})
}

func openHistory(t *testing.T) *history.Store {
	t.Helper()

	hist, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })
	return hist
}

func serve(s http.Handler, method, path string) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	request, _ := http.NewRequest(method, path, nil)
	s.ServeHTTP(response, request)
	return response
}

func mustCreateSession(t *testing.T, s http.Handler) string {
	t.Helper()

	response := serve(s, http.MethodPost, "/sessions")
	assertStatus(t, response.Code, http.StatusCreated)

	var got NewSessionRes
	mustDecode(t, response.Body, &got)
	require.NotEmpty(t, got.SessionID)
	return got.SessionID
}

func mustDecode(t *testing.T, body io.Reader, target interface{}) {
	t.Helper()

	bodyBytes, err := io.ReadAll(body)
	require.NoError(t, err)
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		t.Fatalf("could not unmarshal json %q: %s", bodyBytes, err.Error())
	}
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)

	if err != nil {
		code := 0
		var body []byte
		if resp != nil {
			code = resp.StatusCode
			body, _ = io.ReadAll(resp.Body)
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}

	return ws
}

func makeWSUrl(serverURL, sessionID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?session_id=" + sessionID
}
