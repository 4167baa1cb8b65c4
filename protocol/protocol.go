package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minaorangina/luckydraw/deck"
)

// Cmd represents a command
type Cmd int

const (
	Draw Cmd = iota
	Retry
	// server-originated
	Result
	Error
)

var cmdNames = []string{
	"draw",
	"retry",
	"result",
	"error",
}

func (c Cmd) String() string {
	if c < Draw || c > Error {
		return fmt.Sprintf("Cmd(%d)", int(c))
	}
	return cmdNames[c]
}

// ParseCmd looks up a command by name
func ParseCmd(name string) (Cmd, bool) {
	for i, n := range cmdNames {
		if n == name {
			return Cmd(i), true
		}
	}
	return 0, false
}

func (c Cmd) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := ParseCmd(string(text))
	if !ok {
		return fmt.Errorf("unknown command %q", text)
	}
	*c = cmd
	return nil
}

// InboundMessage is a message from a client to the server
type InboundMessage struct {
	Command Cmd `json:"command"`
}

// OutboundMessage is a message from the server to a client
type OutboundMessage struct {
	SessionID   string      `json:"session_id"`
	Command     Cmd         `json:"command"`
	Draw        int         `json:"draw,omitempty"`
	Hand        []deck.Card `json:"hand,omitempty"`
	Matched     bool        `json:"matched"`
	Description string      `json:"description,omitempty"`
	State       string      `json:"state"`
	Error       string      `json:"error,omitempty"`
}

var ErrMissingCommand = errors.New("message has no command")

// DecodeInbound parses a client message. The command field is required.
func DecodeInbound(data []byte) (InboundMessage, error) {
	var raw struct {
		Command *Cmd `json:"command"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return InboundMessage{}, fmt.Errorf("decode message: %w", err)
	}
	if raw.Command == nil {
		return InboundMessage{}, ErrMissingCommand
	}
	return InboundMessage{Command: *raw.Command}, nil
}
