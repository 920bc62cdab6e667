package handlers

import (
	"context"
	"strings"

	"github.com/carrybid/carrybid/backend/config"
	webmodels "github.com/carrybid/carrybid/backend/models"
	webservices "github.com/carrybid/carrybid/backend/services"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"github.com/carrybid/carrybid/marketplace"
	"github.com/gofiber/fiber/v2"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *config.WebAppConfig
	App            *marketplace.App
	OAuthService   *webservices.OAuthService
	SessionService *webservices.SessionService
	Version        string
	Commit         string
}

// GetSession gets the current user session
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// EnsureWatcher returns the notification watcher of session, starting one
// when the process has none (first request after sign-in or a restart).
func (w *WebApp) EnsureWatcher(ctx context.Context, session *webmodels.UserSession) (*notifications.Session, error) {
	return w.App.Notifications.Ensure(ctx, session.UserID, session.SessionID)
}

// frontendURL joins path onto the configured frontend origin.
func (w *WebApp) frontendURL(path string) string {
	return strings.TrimRight(w.Config.Config.Web.FrontendURL, "/") + path
}

// sessionOf returns the caller; only valid behind AuthRequired.
func sessionOf(c *fiber.Ctx) *webmodels.UserSession {
	session, _ := utils.ExtractUserSession(c)
	return session
}
