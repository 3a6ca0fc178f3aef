// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/pack/internal/core/ports"
)

// messager is implemented by zerr errors, which can report their own message without the chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing to stderr.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	handler := NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain, one cause per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatError(err))
}

func formatError(err error) string {
	messages := collectMessages(nil, err)

	lines := []string{messages[0]}
	if len(messages) > 1 {
		lines = append(lines, "  Caused by:")
		for _, msg := range messages[1:] {
			lines = append(lines, "    -> "+strings.ReplaceAll(msg, "\n", "\n       "))
		}
	}
	return strings.Join(lines, "\n")
}

// collectMessages flattens the chain of err, descending into each member of a
// joined error in order.
func collectMessages(messages []string, err error) []string {
	for current := err; current != nil; {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, member := range joined.Unwrap() {
				messages = collectMessages(messages, member)
			}
			return messages
		}
		m, ok := current.(messager)
		if !ok {
			return append(messages, current.Error())
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}
	return messages
}
