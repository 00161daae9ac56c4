// Package logging sets up the slog logger tinsel uses for its own
// diagnostics. Rendered messages never go through it.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w at level. With asJSON set it uses a
// JSONHandler for machine consumers; otherwise a TextHandler.
func New(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init creates the logger described by New and installs it as the slog
// default. Callers pass os.Stderr so diagnostics never mix with rendered
// output on stdout.
func Init(w io.Writer, level slog.Level, asJSON bool) {
	slog.SetDefault(New(w, level, asJSON))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
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
