package main

import (
	"testing"

	"github.com/minaorangina/luckydraw/internal/testutils"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/session"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestOptionsFor(t *testing.T) {
	assert.Equal(t, []string{optionDraw, optionQuit}, optionsFor(session.Initial))
	assert.Equal(t, []string{optionRetry, optionQuit}, optionsFor(session.DrawnMatched))
	assert.Equal(t, []string{optionAgain, optionQuit}, optionsFor(session.DrawnUnmatched))
}

func TestStyle(t *testing.T) {
	hand := testutils.Hand(t, "A♥", "10♠")

	assert.Equal(t, " A♥ "+"  "+" 10♠ ", pterm.RemoveColorFromString(handText(hand)))

	won := session.Draw{Result: rules.Matched("Four aces")}
	assert.Equal(t, "You win! Four aces", pterm.RemoveColorFromString(resultText(won)))

	lost := session.Draw{Result: rules.NoMatch}
	assert.Equal(t, "No luck this time", pterm.RemoveColorFromString(resultText(lost)))
}
