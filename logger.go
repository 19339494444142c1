package readgate

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with readgate-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSemaphore adds the semaphore name to the logger.
func (l *Logger) WithSemaphore(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("semaphore", name),
	}
}

// LogEviction logs the eviction of an inactive read.
func (l *Logger) LogEviction(name string, id uint64) {
	l.Debug("inactive read evicted",
		"semaphore", name,
		"id", id,
	)
}

// LogQueueOverload logs a rejected admission request.
func (l *Logger) LogQueueOverload(name string, depth int) {
	l.Warn("admission queue overload",
		"semaphore", name,
		"depth", depth,
	)
}

// LogAdmissionTimeout logs a queued request that gave up waiting.
func (l *Logger) LogAdmissionTimeout(name string, err error) {
	l.Debug("admission wait aborted",
		"semaphore", name,
		"error", err,
	)
}
