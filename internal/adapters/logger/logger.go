// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/jig/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	out    io.Writer
	level  slog.LevelVar
}

// New creates a new Logger writing to stderr at Info level.
func New() *Logger {
	l := &Logger{out: os.Stderr}
	l.level.Set(slog.LevelInfo)
	l.logger = slog.New(slog.NewTextHandler(l.out, &slog.HandlerOptions{
		Level: &l.level,
	}))
	return l
}

// SetLevel updates the minimum level. The app layer maps the "verbose" and
// "debug" flags from the settings store onto it.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: &l.level,
	}))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}

var _ ports.Logger = (*Logger)(nil)
