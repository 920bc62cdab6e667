package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeAction LogType = "ACT"
	TypeHTTP   LogType = "HTTP"
	TypeDB     LogType = "DB"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// ParseLevel maps a config string to a slog level. Unknown values are Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CustomHandler writes one coloured line per record:
//
//	[carrybid] [15:04:05] [INFO] [DB] Query executed key=value
type CustomHandler struct {
	app    string
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
	color  bool
}

func NewHandler(app string, level slog.Leveler) *CustomHandler {
	return NewHandlerWithWriter(app, level, os.Stdout, true)
}

func NewHandlerWithWriter(app string, level slog.Leveler, out io.Writer, color bool) *CustomHandler {
	return &CustomHandler{
		app:   app,
		level: level,
		out:   out,
		mu:    &sync.Mutex{},
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor, levelText := levelStyle(r.Level)

	logType := TypeSystem
	var errText, location, extra string
	visit := func(a slog.Attr) {
		switch a.Key {
		case "type":
			logType = typeOf(a.Value.String())
		case "error":
			errText = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			location = a.Value.String()
		default:
			extra += fmt.Sprintf(" %s=%v", h.qualify(a.Key), a.Value)
		}
	}
	for _, a := range h.attrs {
		visit(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		visit(a)
		return true
	})

	message := r.Message
	if r.Level >= slog.LevelError {
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
	}
	if errText != "" {
		message = fmt.Sprintf("%s: %s", message, errText)
	}

	timestamp := r.Time.Format("15:04:05")
	if r.Time.IsZero() {
		timestamp = time.Now().Format("15:04:05")
	}

	white, reset := colorWhite, colorReset
	if !h.color {
		white, reset, levelColor = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		white, h.app, timestamp, levelColor, levelText, white, logType, message, extra, reset)
	return err
}

func (h *CustomHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func levelStyle(l slog.Level) (string, string) {
	switch {
	case l >= slog.LevelError:
		return colorRed, "ERROR"
	case l >= slog.LevelWarn:
		return colorYellow, "WARN"
	case l >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func typeOf(v string) LogType {
	switch v {
	case "act":
		return TypeAction
	case "http":
		return TypeHTTP
	case "db":
		return TypeDB
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
