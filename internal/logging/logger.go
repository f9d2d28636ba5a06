package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog with a runtime-toggleable debug level. All methods are
// nil-safe so optional components can log without wiring checks.
type Logger struct {
	debugEnabled atomic.Bool
	out          *slog.Logger
}

func New(debug bool) *Logger {
	return NewWithWriter(debug, os.Stderr)
}

func NewWithWriter(debug bool, w io.Writer) *Logger {
	logger := &Logger{
		out: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	logger.debugEnabled.Store(debug)
	return logger
}

func Field(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func (l *Logger) SetDebugEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.debugEnabled.Store(enabled)
}

func (l *Logger) DebugEnabled() bool {
	if l == nil {
		return false
	}
	return l.debugEnabled.Load()
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	if l == nil || !l.debugEnabled.Load() {
		return
	}
	l.log(slog.LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelError, msg, fields)
}

func (l *Logger) log(level slog.Level, msg string, fields []slog.Attr) {
	l.out.LogAttrs(context.Background(), level, msg, fields...)
}
