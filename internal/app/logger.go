package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/storyline-backend/internal/config"
)

// NewLogger builds the process logger from cfg, writes to stderr and installs
// it as the slog default. Every record carries the build version.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(slog.String("version", Version))
	slog.SetDefault(logger)
	return logger
}

// newLogger returns a JSON logger for format "json" and a text logger with
// source locations otherwise.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := !strings.EqualFold(strings.TrimSpace(cfg.Format), "json")

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
