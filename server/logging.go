package server

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gorilla/handlers"
)

func (s *DrawServer) logRequest(_ io.Writer, params handlers.LogFormatterParams) {
	s.logger.Info("request",
		"method", params.Request.Method,
		"path", params.URL.Path,
		"status", params.StatusCode,
		"size", params.Size,
		"duration", time.Since(params.TimeStamp),
	)
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.logger.Error("recovered from panic", "panic", fmt.Sprint(args...))
}
