package handlers

import (
	"errors"
	"log/slog"

	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
)

// Register creates a credential account and signs it in.
func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := webApp.App.Users.Register(c.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if err := signIn(c, webApp, user); err != nil {
			return err
		}
		return utils.SendCreated(c, user, "Account created")
	}
}

// Login signs in with email and password.
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := webApp.App.Users.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if err := signIn(c, webApp, user); err != nil {
			return err
		}
		return utils.SendSuccess(c, user, "Signed in")
	}
}

// signIn issues the session cookie and starts the notification watcher.
func signIn(c *fiber.Ctx, webApp *WebApp, user *users.User) error {
	session := webApp.SessionService.NewUserSession(user)
	if err := webApp.SessionService.CreateSession(c, session); err != nil {
		slog.Error("Failed to create session cookie",
			slog.String("type", "error"),
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return utils.SendInternalServerError(c, "Failed to create session")
	}
	if _, err := webApp.EnsureWatcher(c.Context(), session); err != nil {
		slog.Warn("Notification watcher not started",
			slog.String("type", "sys"),
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}
	return nil
}

// GoogleOAuth redirects to the Google consent screen.
func GoogleOAuth(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !webApp.OAuthService.Enabled() {
			return utils.SendNotFound(c, "Google sign-in is not configured")
		}

		state, err := webApp.OAuthService.GenerateState()
		if err != nil {
			slog.Error("Failed to generate OAuth state", slog.String("type", "error"), slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to initiate authentication")
		}

		if err := webApp.SessionService.SetState(c, state); err != nil {
			slog.Error("Failed to set OAuth state", slog.String("type", "error"), slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to initiate authentication")
		}

		return c.Redirect(webApp.OAuthService.GenerateAuthURL(state))
	}
}

// OAuthCallback completes the Google sign-in and redirects to the frontend.
func OAuthCallback(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		fail := func(reason string) error {
			return c.Redirect(webApp.frontendURL("/login?error=" + reason))
		}

		expectedState, err := webApp.SessionService.GetAndClearState(c)
		if err != nil {
			slog.Warn("OAuth callback: invalid or missing state", slog.String("type", "http"), slog.Any("error", err))
			return fail("invalid_state")
		}
		if c.Query("state") != expectedState {
			slog.Warn("OAuth callback: state mismatch", slog.String("type", "http"))
			return fail("state_mismatch")
		}

		if errorParam := c.Query("error"); errorParam != "" {
			slog.Warn("OAuth callback: provider returned error",
				slog.String("type", "http"),
				slog.String("error", errorParam),
				slog.String("description", c.Query("error_description")))
			return fail("oauth_error")
		}

		code := c.Query("code")
		if code == "" {
			return fail("missing_code")
		}

		accessToken, err := webApp.OAuthService.ExchangeCodeForToken(ctx, code)
		if err != nil {
			slog.Error("OAuth callback: failed to exchange code for token",
				slog.String("type", "error"),
				slog.Any("error", err))
			return fail("token_exchange_failed")
		}

		account, err := webApp.OAuthService.GetUserInfo(ctx, accessToken)
		if err != nil {
			slog.Error("OAuth callback: failed to get user info",
				slog.String("type", "error"),
				slog.Any("error", err))
			return fail("user_info_failed")
		}

		user, err := webApp.App.Users.SignIn(ctx, account.Identity())
		if errors.Is(err, users.ErrBanned) {
			return fail("banned")
		}
		if err != nil {
			slog.Error("OAuth callback: sign-in failed",
				slog.String("type", "error"),
				slog.String("email", account.Email),
				slog.Any("error", err))
			return fail("sign_in_failed")
		}

		if err := signIn(c, webApp, user); err != nil {
			return err
		}

		slog.Info("OAuth callback: user authenticated successfully",
			slog.String("type", "act"),
			slog.String("user_id", user.ID),
			slog.Bool("is_admin", user.IsAdmin))

		return c.Redirect(webApp.frontendURL("/"))
	}
}

// Logout stops the notification watcher and clears the cookie.
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session, err := webApp.GetSession(c); err == nil {
			webApp.App.Notifications.Stop(session.SessionID)
		}
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out successfully")
	}
}

// Me returns the signed-in user and the session unread count.
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := sessionOf(c)
		user, err := webApp.App.Users.Get(c.Context(), session.UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		unread := 0
		if watcher, ok := webApp.App.Notifications.Session(session.SessionID); ok {
			unread = watcher.UnreadCount()
		}

		return utils.SendSuccess(c, fiber.Map{
			"user":       user,
			"session_id": session.SessionID,
			"expires_at": session.ExpiresAt,
			"unread":     unread,
		}, "Session valid")
	}
}
