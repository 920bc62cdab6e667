package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	streamBuffer    = 16
	streamHeartbeat = 25 * time.Second
)

var errStreamBehind = errors.New("notification stream is not keeping up")

// watcherOf returns the caller's notification watcher, set by AuthRequired.
func watcherOf(c *fiber.Ctx, webApp *WebApp) (*notifications.Session, error) {
	if watcher, ok := c.Locals("watcher").(*notifications.Session); ok && watcher != nil {
		return watcher, nil
	}
	return webApp.EnsureWatcher(c.Context(), sessionOf(c))
}

func ListNotifications(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		watcher, err := watcherOf(c, webApp)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{
			"notifications": watcher.List(),
			"unread":        watcher.UnreadCount(),
			"permission":    watcher.Permission(),
		}, "")
	}
}

func MarkNotificationRead(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		watcher, err := watcherOf(c, webApp)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if err := watcher.MarkRead(c.Params("id")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"unread": watcher.UnreadCount()}, "")
	}
}

func MarkAllNotificationsRead(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		watcher, err := watcherOf(c, webApp)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		watcher.MarkAllRead()
		return utils.SendSuccess(c, fiber.Map{"unread": 0}, "")
	}
}

// SetNotificationPermission records whether the browser allowed push
// delivery for this session.
func SetNotificationPermission(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.PermissionRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		watcher, err := watcherOf(c, webApp)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		watcher.SetPermission(req.Granted)
		return utils.SendSuccess(c, fiber.Map{"permission": req.Granted}, "")
	}
}

// streamPusher hands notifications to the SSE writer goroutine.
type streamPusher struct {
	ch chan notifications.Notification
}

func (p *streamPusher) Push(n notifications.Notification) error {
	select {
	case p.ch <- n:
		return nil
	default:
		return errStreamBehind
	}
}

// StreamNotifications pushes the session's notifications as server-sent
// events until the client goes away.
func StreamNotifications(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		watcher, err := watcherOf(c, webApp)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		pusher := &streamPusher{ch: make(chan notifications.Notification, streamBuffer)}
		watcher.Attach(pusher)

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer watcher.Detach(pusher)

			heartbeat := time.NewTicker(streamHeartbeat)
			defer heartbeat.Stop()

			fmt.Fprintf(w, "event: ready\ndata: {\"unread\":%d}\n\n", watcher.UnreadCount())
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case n := <-pusher.ch:
					payload, err := json.Marshal(n)
					if err != nil {
						slog.Error("Failed to encode notification", slog.String("type", "error"), slog.Any("error", err))
						continue
					}
					fmt.Fprintf(w, "id: %s\nevent: notification\ndata: %s\n\n", n.ID, payload)
				case <-heartbeat.C:
					fmt.Fprint(w, ": ping\n\n")
				}
				if err := w.Flush(); err != nil {
					slog.Debug("Notification stream closed",
						slog.String("type", "http"),
						slog.String("session_id", watcher.ID))
					return
				}
			}
		}))
		return nil
	}
}
