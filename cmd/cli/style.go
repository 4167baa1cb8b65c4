package main

import (
	"strings"

	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/session"
	"github.com/pterm/pterm"
)

func renderDraw(_ string, d session.Draw) {
	pterm.Println(handText(d.Hand))
	pterm.DefaultBox.
		WithTitle(pterm.Sprintf("Draw %d", d.Number)).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(resultText(d))
}

func cardText(c deck.Card) string {
	if c.Color() == deck.Red {
		return pterm.LightRed(c.String())
	}
	return pterm.Black(c.String())
}

func handText(hand []deck.Card) string {
	cards := make([]string, 0, len(hand))
	for _, c := range hand {
		cards = append(cards, pterm.BgWhite.Sprint(" "+cardText(c)+" "))
	}
	return strings.Join(cards, "  ")
}

func resultText(d session.Draw) string {
	if !d.Result.Matched {
		return pterm.LightYellow("No luck this time")
	}
	return pterm.LightGreen("You win! ") + d.Result.Description
}
