// Package elog provides the leveled, structured logger used by the EEI core.
// It wraps log/slog the same way the surrounding client wraps it elsewhere:
// a thin Logger type with per-subsystem child loggers, kept off the
// per-opcode hot path and reserved for orchestration-level diagnostics.
package elog

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with EEI-specific conveniences.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger = New(slog.LevelInfo, os.Stderr)

// New creates a Logger that writes JSON to w at the given level.
func New(level slog.Level, w io.Writer) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// Noop returns a Logger that discards everything, for tests that don't want
// orchestration diagnostics on stderr.
func Noop() *Logger {
	return New(slog.LevelError+1, io.Discard)
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger { return defaultLogger }

// Module returns a child logger tagged with a "module" attribute — the vm
// package's NewFrameState uses this for its default "eei" logger, which the
// frame's CallOrchestrator logs through.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
