// Package logger times repository statements and logs their outcome.
package logger

import (
	"log/slog"
	"time"
)

type QueryLogger struct {
	Operation string
	Query     string
	Args      []any
	StartTime time.Time
}

func NewQueryLogger(operation, query string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Query:     query,
		Args:      args,
		StartTime: time.Now(),
	}
}

// Log reports the statement. Failures log the arguments, successes only the
// row count.
func (l *QueryLogger) Log(err error, rowsAffected int64) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("query", l.Query),
		slog.Duration("took", time.Since(l.StartTime)),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("args", l.Args), slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", append(attrs, slog.Int64("affected_rows", rowsAffected))...)
}
