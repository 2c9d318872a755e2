// Package logging configures structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup()                          // level and format from env
//	logger := logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	LOG_FORMAT: text (colored, default) or json
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures logging at the level specified by LOG_LEVEL env var
// (default: INFO) and installs it as the slog default.
func Setup() *slog.Logger {
	return SetupWithLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel configures logging at the given level.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level, os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)
	return logger
}

// New returns a logger writing to w. format "json" selects slog's JSON handler,
// anything else the colored tint handler.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

func levelFromEnv(value string) slog.Level {
	switch strings.ToLower(value) {
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
