package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/luckydraw/config"
	"github.com/minaorangina/luckydraw/history"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/server"
	"github.com/minaorangina/luckydraw/store"
	"github.com/pterm/pterm"
)

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	conditions := rules.LoadOrEmpty(cfg.ConditionsPath, logger)

	var hist *history.Store
	if cfg.HistoryPath != "" {
		hist, err = history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Error("could not open draw history", "path", cfg.HistoryPath, "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	s := server.NewServer(store.NewInMemorySessionStore(), server.ServerOpts{
		Conditions:     conditions,
		HandSize:       cfg.HandSize,
		NewSource:      cfg.Sources(),
		History:        hist,
		Logger:         logger,
		AllowedOrigins: cfg.Origins(),
	})
	s.Addr = cfg.Addr()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
