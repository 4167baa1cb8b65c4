package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/minaorangina/luckydraw/config"
	"github.com/minaorangina/luckydraw/history"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/session"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const (
	optionDraw  = "Draw"
	optionAgain = "Draw again"
	optionRetry = "Retry"
	optionQuit  = "Quit"
)

func main() {
	draws := flag.Int("draws", 0, "draw this many times without prompting, then exit")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	conditions := rules.LoadOrEmpty(cfg.ConditionsPath, logger)

	src, err := cfg.Source()
	if err != nil {
		logger.Error("could not seed random source", "error", err)
		os.Exit(1)
	}

	var recorder session.Renderer
	if cfg.HistoryPath != "" {
		hist, err := history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Error("could not open draw history", "path", cfg.HistoryPath, "error", err)
			os.Exit(1)
		}
		defer hist.Close()
		recorder = hist.Recorder(context.Background(), func(err error) {
			logger.Warn("could not record draw", "error", err)
		})
	}

	sess, err := session.New(session.Opts{
		Conditions: conditions,
		HandSize:   cfg.HandSize,
		Source:     src,
		Renderer:   session.Renderers(session.RendererFunc(renderDraw), recorder),
	})
	if err != nil {
		logger.Error("could not start session", "error", err)
		os.Exit(1)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Lucky", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Draw", pterm.FgDarkGray.ToStyle()),
	).Render()

	if *draws > 0 {
		for i := 0; i < *draws; i++ {
			if _, err := sess.RequestDraw(); err != nil {
				logger.Error("draw failed", "error", err)
				os.Exit(1)
			}
		}
		return
	}

	pterm.Info.Printfln("%d conditions loaded. Ready to draw %d cards.", conditions.Len(), sess.HandSize())

	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("What next?").
			WithOptions(optionsFor(sess.State())).
			Show()
		if err != nil {
			logger.Error("could not read choice", "error", err)
			os.Exit(1)
		}

		switch choice {
		case optionQuit:
			pterm.Info.Printfln("%d draws this session.", sess.Draws())
			return
		case optionRetry:
			_, err = sess.Retry()
		default:
			_, err = sess.RequestDraw()
		}
		if err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

// optionsFor lists the actions that make sense in a state
func optionsFor(state session.State) []string {
	switch state {
	case session.DrawnMatched:
		return []string{optionRetry, optionQuit}
	case session.DrawnUnmatched:
		return []string{optionAgain, optionQuit}
	}
	return []string{optionDraw, optionQuit}
}
