package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/luckydraw/protocol"
	"github.com/minaorangina/luckydraw/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

func newUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originAllowed(origins),
	}
}

// originAllowed accepts requests without an Origin header, and "*" allows any origin
func originAllowed(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range origins {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// HandleWS upgrades to a websocket on which the client sends draw and
// retry commands for one session
func (s *DrawServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID")
		return
	}

	sess, err := s.store.FindSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.Error("could not upgrade to websocket", "session_id", sessionID, "error", err)
		return
	}

	c := &wsClient{
		conn:    conn,
		session: sess,
		send:    make(chan protocol.OutboundMessage),
		done:    make(chan struct{}),
		server:  s,
	}
	go c.writePump()
	c.readPump()
}

type wsClient struct {
	conn    *websocket.Conn
	session *session.Session
	send    chan protocol.OutboundMessage
	done    chan struct{}
	server  *DrawServer
}

// readPump handles commands until the connection closes
func (c *wsClient) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Warn("websocket closed", "session_id", c.session.ID(), "error", err)
			}
			return
		}

		select {
		case c.send <- c.handle(data):
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) handle(data []byte) protocol.OutboundMessage {
	msg, err := protocol.DecodeInbound(data)
	if err != nil {
		return c.errorMessage(err)
	}

	out, err := runCommand(c.session, msg.Command)
	if err != nil {
		return c.errorMessage(err)
	}
	return out
}

func (c *wsClient) errorMessage(err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		SessionID: c.session.ID(),
		Command:   protocol.Error,
		State:     c.session.State().String(),
		Error:     err.Error(),
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.server.logger.Warn("could not write to websocket", "session_id", c.session.ID(), "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
