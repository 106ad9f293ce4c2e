package zllplot

import (
	"log/slog"
	"os"
)

// NewLogger returns a text logger writing to stderr, at debug level when
// verbose is set.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
