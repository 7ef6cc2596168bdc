package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger. Handlers and services take *slog.Logger so
// tests can swap in a discard logger.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Discard returns a logger that drops everything; used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
