package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		log     func(l *slog.Logger)
		want    []string
		wantOut bool
	}{
		{
			name:  "db info",
			level: slog.LevelDebug,
			log: func(l *slog.Logger) {
				l.Info("Query executed", slog.String("type", "db"), slog.Int("rows", 2))
			},
			want:    []string{"[carrybid]", "[INFO]", "[DB]", "Query executed", "rows=2"},
			wantOut: true,
		},
		{
			name:  "error carries cause",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.Error("Upload failed", slog.String("type", "error"), slog.Any("error", errors.New("boom")))
			},
			want:    []string{"[ERROR]", "[ERR]", "Upload failed", "boom"},
			wantOut: true,
		},
		{
			name:  "grouped attrs",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.WithGroup("req").Warn("Slow request", slog.String("path", "/api/posts"))
			},
			want:    []string{"[WARN]", "[SYS]", "req.path=/api/posts"},
			wantOut: true,
		},
		{
			name:  "below level",
			level: slog.LevelWarn,
			log: func(l *slog.Logger) {
				l.Info("ignored")
			},
			wantOut: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewHandlerWithWriter("carrybid", tt.level, &buf, false))
			tt.log(l)

			out := buf.String()
			if !tt.wantOut {
				if out != "" {
					t.Fatalf("expected no output, got %q", out)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
