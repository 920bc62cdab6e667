package logger

import (
	"log/slog"
	"time"
)

// LogAction logs a user-initiated operation
func LogAction(name, actorID string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "act"),
		slog.String("name", name),
		slog.String("actor", actorID),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Action failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Action completed", attrs...)
	}
}

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("query", query),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Query executed", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(base, attrs...)...)
}
