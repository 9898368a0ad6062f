package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// AccessLog logs one line per request through the request's context
// logger, so entries carry the trace ID when Trace runs first.
func AccessLog(next http.Handler) http.Handler {
	return chimiddleware.RequestLogger(slogFormatter{})(next)
}

type slogFormatter struct{}

func (slogFormatter) NewLogEntry(r *http.Request) chimiddleware.LogEntry {
	return &slogEntry{
		logger: logger.FromContext(r.Context()).With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		),
	}
}

type slogEntry struct {
	logger *slog.Logger
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	e.logger.Log(context.Background(), level, "request completed",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed))
}

func (e *slogEntry) Panic(v interface{}, _ []byte) {
	e.logger.Error("request panicked", slog.Any("panic", v))
}
