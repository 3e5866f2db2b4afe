package kdgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kdgo-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, code string, point []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"code", code,
			"point", point,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"code", code,
			"point", point,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, point []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"point", point,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"point", point,
		)
	}
}

// LogSearch logs a k-NN search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound, leavesChecked int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
			"leaves_checked", leavesChecked,
		)
	}
}

// LogBatchSearch logs a batch of k-NN searches.
func (l *Logger) LogBatchSearch(ctx context.Context, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch search failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch search completed",
			"count", count,
		)
	}
}

// LogDump logs a dump of the tree.
func (l *Logger) LogDump(ctx context.Context, bytes int, compression string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"compression", compression,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dump written",
			"bytes", bytes,
			"compression", compression,
		)
	}
}
