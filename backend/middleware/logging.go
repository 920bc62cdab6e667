package middleware

import (
	"log/slog"
	"time"

	"github.com/carrybid/carrybid/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// requestAttrs are the type=http attributes shared by the request and the
// admin action log lines.
func requestAttrs(c *fiber.Ctx, start time.Time) []any {
	attrs := []any{
		slog.String("type", "http"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("route", c.Route().Path),
		slog.Int("status", c.Response().StatusCode()),
		slog.Duration("duration", time.Since(start)),
		slog.String("ip", utils.GetIPAddress(c)),
	}
	if session, ok := utils.ExtractUserSession(c); ok {
		attrs = append(attrs,
			slog.String("user_id", session.UserID),
			slog.String("session_id", session.SessionID))
	}
	return attrs
}

func levelFor(status int, err error) slog.Level {
	switch {
	case err != nil || status >= fiber.StatusInternalServerError:
		return slog.LevelError
	case status >= fiber.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LoggingMiddleware logs one line per request. The notification stream is
// logged when it is opened; its body outlives the handler.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := requestAttrs(c, start)
		message := "HTTP request processed"
		if err != nil {
			message = "HTTP request failed"
			attrs = append(attrs, slog.Any("error", err))
		}
		slog.Log(c.Context(), levelFor(c.Response().StatusCode(), err), message, attrs...)
		return err
	}
}

// AdminAction logs a moderation request together with the record it
// targeted. The durable entry is written by the moderation service; this
// line also covers attempts that failed before reaching it.
func AdminAction(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		attrs := append(requestAttrs(c, start),
			slog.String("action", action),
			slog.String("target_id", c.Params("id")),
			slog.Bool("success", err == nil && status < fiber.StatusBadRequest))

		level := levelFor(status, err)
		if level == slog.LevelInfo {
			slog.Log(c.Context(), level, "Admin action completed", attrs...)
		} else {
			slog.Log(c.Context(), level, "Admin action refused", attrs...)
		}
		return err
	}
}
