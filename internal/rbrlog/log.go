// Package rbrlog is a thin verbosity-aware wrapper around log/slog,
// styled on cuelang.org/go/internal/httplog's SlogLogger: a small struct
// holding a *slog.Logger, passed explicitly into callers rather than
// reached for as a package-level global (spec.md §9: "Globals: None").
package rbrlog

import (
	"context"
	"log/slog"
	"os"
)

// Level is the verbosity the CLI surface exposes (spec.md §6: "Global
// flag controls verbosity (info / warn / debug / error)").
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger wraps a *slog.Logger. The zero value is nil-safe: every method
// falls back to a no-op so core packages can accept a *Logger argument
// without callers being forced to construct one.
type Logger struct {
	logger *slog.Logger
}

// New builds a Logger that writes text-formatted records to w at the
// given verbosity.
func New(w *os.File, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{logger: slog.New(h)}
}

// Discard returns a Logger that drops everything, for callers (such as
// library consumers and tests) that don't want log output.
func Discard() *Logger {
	return &Logger{logger: slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(context.Background(), slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(context.Background(), slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), slog.LevelError, msg, args...) }
