package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/carrybid/carrybid/backend/handlers"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
)

// Sessions closer than this to expiry are re-issued on use.
const refreshWithin = 24 * time.Hour

// AuthRequired ensures the caller has a valid session for an existing,
// unbanned user. It refreshes the admin flag from the user record and makes
// sure the session's notification watcher is running.
func AuthRequired(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session", slog.String("type", "http"), slog.Any("error", err))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		user, err := webApp.App.Users.Get(c.Context(), session.UserID)
		if errors.Is(err, users.ErrNotFound) {
			webApp.SessionService.DestroySession(c)
			return utils.SendUnauthorized(c, "Authentication required")
		}
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if user.Banned {
			slog.Warn("Auth required: banned user refused",
				slog.String("type", "http"),
				slog.String("user_id", user.ID))
			webApp.App.Notifications.Stop(session.SessionID)
			webApp.SessionService.DestroySession(c)
			return utils.SendForbidden(c, "Account is banned")
		}
		session.IsAdmin = user.IsAdmin
		session.Name = user.Name
		session.Avatar = user.Avatar

		if time.Until(session.ExpiresAt) < refreshWithin {
			if err := webApp.SessionService.RefreshSession(c, session); err != nil {
				slog.Warn("Session refresh failed",
					slog.String("type", "http"),
					slog.String("user_id", session.UserID),
					slog.Any("error", err))
			}
		}

		c.Locals("user", session)

		watcher, err := webApp.EnsureWatcher(c.Context(), session)
		if err != nil {
			slog.Warn("Notification watcher unavailable",
				slog.String("type", "sys"),
				slog.String("session_id", session.SessionID),
				slog.Any("error", err))
		} else {
			c.Locals("watcher", watcher)
		}

		return c.Next()
	}
}

// AdminRequired ensures the user has admin privileges
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			slog.Warn("Admin required: no user in context", slog.String("type", "http"))
			return utils.SendForbidden(c, "Access denied")
		}

		if !utils.IsAdmin(c) {
			slog.Warn("Admin required: user lacks admin privileges",
				slog.String("type", "http"),
				slog.String("user_id", session.UserID))
			return utils.SendForbidden(c, "Admin access required")
		}

		return c.Next()
	}
}

// OptionalAuth adds the session to the context when present, without
// requiring it
func OptionalAuth(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session, err := webApp.GetSession(c); err == nil {
			c.Locals("user", session)
		}
		return c.Next()
	}
}
