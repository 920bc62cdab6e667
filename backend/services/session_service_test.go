package services

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carrybid/carrybid/backend/config"
	"github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/carrybid/carrybid/marketplace"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(key string) *SessionService {
	cfg := marketplace.DefaultConfig()
	cfg.Web.SessionKey = key
	return NewSessionService(config.NewWebAppConfig(cfg))
}

// sessionApp issues a cookie on /login and echoes the decoded session on /me.
func sessionApp(s *SessionService) *fiber.App {
	app := fiber.New()
	app.Get("/login", func(c *fiber.Ctx) error {
		session := s.NewUserSession(&users.User{ID: "u1", Name: "Asha", Email: "asha@carrybid.test"})
		if err := s.CreateSession(c, session); err != nil {
			return err
		}
		return c.JSON(session)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		session, err := s.GetSession(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.JSON(session)
	})
	return app
}

func issueCookie(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSessionService_RoundTrip(t *testing.T) {
	s := newTestSessions("k1")
	app := sessionApp(s)
	cookie := issueCookie(t, app)

	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionService_Rejects(t *testing.T) {
	issuer := newTestSessions("k1")
	valid := issueCookie(t, sessionApp(issuer))

	raw, err := base64.URLEncoding.DecodeString(valid.Value)
	require.NoError(t, err)
	raw[0] ^= 0xff
	tampered := base64.URLEncoding.EncodeToString(raw)

	expired := newTestSessions("k1")
	expired.now = func() time.Time { return time.Now().Add(SessionDuration + time.Hour) }

	tests := []struct {
		name     string
		service  *SessionService
		cookie   string
		wantCode int
	}{
		{name: "valid", service: issuer, cookie: valid.Value, wantCode: http.StatusOK},
		{name: "no cookie", service: issuer, cookie: "", wantCode: http.StatusUnauthorized},
		{name: "tampered payload", service: issuer, cookie: tampered, wantCode: http.StatusUnauthorized},
		{name: "different key", service: newTestSessions("k2"), cookie: valid.Value, wantCode: http.StatusUnauthorized},
		{name: "not base64", service: issuer, cookie: "%%%", wantCode: http.StatusUnauthorized},
		{name: "expired", service: expired, cookie: valid.Value, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			resp, err := sessionApp(tt.service).Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestSessionService_NewUserSession(t *testing.T) {
	s := newTestSessions("k1")
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	u := &users.User{ID: "u1", Name: "Asha", IsAdmin: true}
	a, b := s.NewUserSession(u), s.NewUserSession(u)

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, fixed.Add(SessionDuration), a.ExpiresAt)
	assert.Equal(t, models.UserSession{
		UserID:    "u1",
		SessionID: a.SessionID,
		Name:      "Asha",
		IsAdmin:   true,
		ExpiresAt: a.ExpiresAt,
	}, *a)
}

func TestSessionService_MissingKey(t *testing.T) {
	_, err := newTestSessions("").signData([]byte("x"))
	assert.Error(t, err)
}
