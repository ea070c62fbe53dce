// Package logx holds small helpers for annotating pslog loggers with the
// identifiers codexterm logs under.
package logx

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with a session id when available.
func WithSession(log pslog.Logger, sessionID string) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return log
}

// WithRun annotates the logger with an execution request id when available.
func WithRun(log pslog.Logger, runID string) pslog.Logger {
	if runID != "" {
		log = log.With("run", runID)
	}
	return log
}

// FileOptions returns structured, colorless logger options with the minimum
// level taken from a config level name. Unknown names fall back to info.
func FileOptions(level string) pslog.Options {
	opts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.InfoLevel}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}

// NewFileLogger opens path for appending and returns a structured logger that
// writes to it. The terminal UI owns stdout/stderr, so interactive commands log
// here instead. An empty path discards all output.
func NewFileLogger(path string, level string) (pslog.Logger, io.Closer, error) {
	if path == "" {
		return pslog.NewWithOptions(io.Discard, FileOptions(level)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return pslog.NewWithOptions(f, FileOptions(level)), f, nil
}
