package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"command":"retry"}`))
	require.NoError(t, err)
	assert.Equal(t, Retry, msg.Command)

	_, err = DecodeInbound([]byte(`{"command":"shuffle"}`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`nope`))
	assert.Error(t, err)

	t.Run("command is required", func(t *testing.T) {
		for _, data := range []string{`{}`, `{"command":null}`, `{"cmd":"retry"}`} {
			_, err := DecodeInbound([]byte(data))
			assert.ErrorIs(t, err, ErrMissingCommand, data)
		}
	})
}

func TestOutboundMessage(t *testing.T) {
	data, err := json.Marshal(OutboundMessage{SessionID: "abc", Command: Error, State: "initial", Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"abc","command":"error","matched":false,"state":"initial","error":"boom"}`, string(data))
}

func TestCmdString(t *testing.T) {
	assert.Equal(t, "draw", Draw.String())
	assert.Equal(t, "Cmd(9)", Cmd(9).String())
}
