package loom

import (
	"io"
	"log/slog"
	"os"
)

// newLogger returns a structured text logger writing to w, or to stderr if
// w is nil. Grounded on dittofs's internal/logger, which wraps log/slog
// behind a small package rather than calling slog directly at call sites.
func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// discardLogger is used by Views opened without an explicit logger, so log
// calls remain cheap no-ops rather than nil checks scattered through view.go.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
