// Package logging configures structured logging for the todolist server.
//
// Usage:
//
//	logging.Setup()                                // INFO level, from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)        // explicit level override
//	logging.SetupWith(os.Stdout, "json", "debug")  // as driven by the server config
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, "text", level))
}

// SetupWith installs a logger writing to w in the given format ("text" or "json")
// and returns it.
func SetupWith(w io.Writer, format, level string) *slog.Logger {
	logger := New(w, format, ParseLevel(level))
	slog.SetDefault(logger)
	return logger
}

// New builds a logger without touching the process default.
// "json" selects slog's JSON handler; anything else uses tint.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// ParseLevel maps debug, warn and error to their slog levels; everything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
