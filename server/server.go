package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/history"
	"github.com/minaorangina/luckydraw/protocol"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/session"
	"github.com/minaorangina/luckydraw/store"
)

const defaultHistoryLimit = 20

// NewSessionRes is returned when a session is created
type NewSessionRes struct {
	SessionID string        `json:"session_id"`
	State     session.State `json:"state"`
}

// ErrorRes carries an error message to the client
type ErrorRes struct {
	Error string `json:"error"`
}

// ServerOpts configures a DrawServer
type ServerOpts struct {
	Conditions     rules.Conditions
	HandSize       int
	NewSource      func() (deck.Source, error)
	Clock          func() time.Time
	History        *history.Store
	Logger         *slog.Logger
	AllowedOrigins []string
}

// DrawServer serves draw sessions over HTTP and websockets
type DrawServer struct {
	store      store.SessionStore
	conditions rules.Conditions
	handSize   int
	newSource  func() (deck.Source, error)
	clock      func() time.Time
	history    *history.Store
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	http.Server
}

// NewServer creates a new DrawServer
func NewServer(sessions store.SessionStore, opts ServerOpts) *DrawServer {
	s := &DrawServer{
		store:      sessions,
		conditions: opts.Conditions,
		handSize:   opts.HandSize,
		newSource:  opts.NewSource,
		clock:      opts.Clock,
		history:    opts.History,
		logger:     opts.Logger,
	}
	if s.store == nil {
		s.store = store.NewInMemorySessionStore()
	}
	if s.newSource == nil {
		s.newSource = deck.NewRandomSource
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.upgrader = newUpgrader(origins)

	router := http.NewServeMux()
	router.HandleFunc("POST /sessions", s.HandleNewSession)
	router.HandleFunc("GET /sessions/{id}", s.HandleGetSession)
	router.HandleFunc("POST /sessions/{id}/draw", s.HandleDraw)
	router.HandleFunc("POST /sessions/{id}/retry", s.HandleRetry)
	router.HandleFunc("GET /sessions/{id}/history", s.HandleHistory)
	router.HandleFunc("GET /conditions", s.HandleConditions)
	router.HandleFunc("GET /ws", s.HandleWS)

	var handler http.Handler = router
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}))(handler)
	handler = handlers.CustomLoggingHandler(io.Discard, handler, s.logRequest)

	s.Handler = handler

	return s
}

// ServeHTTP serves http
func (s *DrawServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler.ServeHTTP(w, r)
}

// Store exposes the sessions the server knows about
func (s *DrawServer) Store() store.SessionStore {
	return s.store
}

// NewSession creates and stores a session with the server's conditions
func (s *DrawServer) NewSession() (*session.Session, error) {
	src, err := s.newSource()
	if err != nil {
		return nil, err
	}

	var renderer session.Renderer
	if s.history != nil {
		renderer = s.history.Recorder(context.Background(), func(err error) {
			s.logger.Error("could not record draw", "error", err)
		})
	}

	sess, err := session.New(session.Opts{
		Conditions: s.conditions,
		HandSize:   s.handSize,
		Source:     src,
		Clock:      s.clock,
		Renderer:   renderer,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AddSession(sess); err != nil {
		return nil, err
	}
	s.logger.Info("session created", "session_id", sess.ID())
	return sess, nil
}

// HandleNewSession handles a request to create a new session
func (s *DrawServer) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.NewSession()
	if err != nil {
		s.logger.Error("could not create session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	writeJSON(w, http.StatusCreated, NewSessionRes{
		SessionID: sess.ID(),
		State:     sess.State(),
	})
}

// HandleGetSession returns a snapshot of a session
func (s *DrawServer) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// HandleDraw draws a new hand
func (s *DrawServer) HandleDraw(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}
	s.respondToDraw(w, sess, protocol.Draw)
}

// HandleRetry draws again after a win
func (s *DrawServer) HandleRetry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}
	s.respondToDraw(w, sess, protocol.Retry)
}

// HandleHistory lists a session's recent draws
func (s *DrawServer) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.history.ListDraws(r.Context(), sess.ID(), limit)
	if err != nil {
		s.logger.Error("could not list draws", "session_id", sess.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, "could not list draws")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleConditions returns the loaded conditions
func (s *DrawServer) HandleConditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.conditions.All())
}

func (s *DrawServer) findSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	sess, err := s.store.FindSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

func (s *DrawServer) respondToDraw(w http.ResponseWriter, sess *session.Session, cmd protocol.Cmd) {
	msg, err := runCommand(sess, cmd)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// runCommand performs a draw or retry and builds the reply
func runCommand(sess *session.Session, cmd protocol.Cmd) (protocol.OutboundMessage, error) {
	var (
		d   session.Draw
		err error
	)
	switch cmd {
	case protocol.Draw:
		d, err = sess.RequestDraw()
	case protocol.Retry:
		d, err = sess.Retry()
	default:
		err = errUnsupportedCommand
	}
	if err != nil {
		return protocol.OutboundMessage{}, err
	}
	return outboundFromDraw(sess.ID(), d), nil
}

var errUnsupportedCommand = errors.New("unsupported command")

func outboundFromDraw(sessionID string, d session.Draw) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		SessionID:   sessionID,
		Command:     protocol.Result,
		Draw:        d.Number,
		Hand:        d.Hand,
		Matched:     d.Result.Matched,
		Description: d.Result.Description,
		State:       d.State.String(),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrRetryNotAllowed):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnknownSessionID):
		return http.StatusNotFound
	case errors.Is(err, errUnsupportedCommand):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorRes{Error: msg})
}
