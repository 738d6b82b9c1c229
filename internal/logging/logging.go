// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stderr, or a human-readable console
// logger in development. An unknown level falls back to info, or debug in
// development.
func New(env, level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, env, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
		if env == "development" {
			lvl = zerolog.DebugLevel
		}
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return logger
}
