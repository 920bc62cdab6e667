package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carrybid/carrybid/backend/config"
	"github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "carrybid_session"
	StateCookieName   = "oauth_state"
	SessionDuration   = 7 * 24 * time.Hour
)

var (
	ErrNoSession      = errors.New("no session cookie found")
	ErrSessionExpired = errors.New("session expired")
)

// SessionService handles user session management
type SessionService struct {
	config *config.WebAppConfig
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(cfg *config.WebAppConfig) *SessionService {
	return &SessionService{
		config: cfg,
		now:    time.Now,
	}
}

// NewUserSession builds a fresh session for u with its own watcher id.
func (s *SessionService) NewUserSession(u *users.User) *models.UserSession {
	return &models.UserSession{
		UserID:    u.ID,
		SessionID: uuid.NewString(),
		Name:      u.Name,
		Avatar:    u.Avatar,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		ExpiresAt: s.now().Add(SessionDuration),
	}
}

// CreateSession signs userSession and sets the session cookie
func (s *SessionService) CreateSession(c *fiber.Ctx, userSession *models.UserSession) error {
	sessionData, err := json.Marshal(userSession)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	signedSession, err := s.signData(sessionData)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    signedSession,
		Path:     "/",
		Expires:  userSession.ExpiresAt,
		Secure:   s.config.Secure(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	slog.Info("Session created for user",
		slog.String("type", "act"),
		slog.String("user_id", userSession.UserID),
		slog.String("session_id", userSession.SessionID),
		slog.Bool("is_admin", userSession.IsAdmin))

	return nil
}

// GetSession retrieves and validates the user session from the request
func (s *SessionService) GetSession(c *fiber.Ctx) (*models.UserSession, error) {
	sessionCookie := c.Cookies(SessionCookieName)
	if sessionCookie == "" {
		return nil, ErrNoSession
	}

	sessionData, err := s.verifyAndDecodeData(sessionCookie)
	if err != nil {
		return nil, fmt.Errorf("invalid session signature: %w", err)
	}

	var userSession models.UserSession
	if err := json.Unmarshal(sessionData, &userSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if s.now().After(userSession.ExpiresAt) {
		s.DestroySession(c)
		return nil, ErrSessionExpired
	}

	return &userSession, nil
}

// DestroySession removes the session cookie
func (s *SessionService) DestroySession(c *fiber.Ctx) {
	s.clearCookie(c, SessionCookieName)

	slog.Info("Session destroyed for request",
		slog.String("type", "act"),
		slog.String("ip", utils.GetIPAddress(c)),
		slog.String("user_agent", utils.GetUserAgent(c)))
}

// SetState sets the OAuth state parameter in a signed cookie
func (s *SessionService) SetState(c *fiber.Ctx, state string) error {
	signedState, err := s.signData([]byte(state))
	if err != nil {
		return fmt.Errorf("failed to sign state: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     StateCookieName,
		Value:    signedState,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		Secure:   s.config.Secure(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return nil
}

// GetAndClearState retrieves and clears the OAuth state parameter
func (s *SessionService) GetAndClearState(c *fiber.Ctx) (string, error) {
	stateCookie := c.Cookies(StateCookieName)
	if stateCookie == "" {
		return "", fmt.Errorf("no state cookie found")
	}

	s.clearCookie(c, StateCookieName)

	stateData, err := s.verifyAndDecodeData(stateCookie)
	if err != nil {
		return "", fmt.Errorf("invalid state signature: %w", err)
	}

	return string(stateData), nil
}

// RefreshSession extends the session expiration time, keeping its watcher id
func (s *SessionService) RefreshSession(c *fiber.Ctx, userSession *models.UserSession) error {
	userSession.ExpiresAt = s.now().Add(SessionDuration)
	return s.CreateSession(c, userSession)
}

func (s *SessionService) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.config.Secure(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// signData signs data using HMAC-SHA256
func (s *SessionService) signData(data []byte) (string, error) {
	key := s.config.Config.Web.SessionKey
	if key == "" {
		return "", fmt.Errorf("session key not configured")
	}

	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	signature := h.Sum(nil)

	combined := append(data, signature...)
	return base64.URLEncoding.EncodeToString(combined), nil
}

// verifyAndDecodeData verifies the signature and returns the original data
func (s *SessionService) verifyAndDecodeData(encodedData string) ([]byte, error) {
	key := s.config.Config.Web.SessionKey
	if key == "" {
		return nil, fmt.Errorf("session key not configured")
	}

	combined, err := base64.URLEncoding.DecodeString(encodedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	// signature is the trailing 32 bytes
	if len(combined) < sha256.Size {
		return nil, fmt.Errorf("invalid data length")
	}

	data := combined[:len(combined)-sha256.Size]
	receivedSignature := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)

	if !hmac.Equal(receivedSignature, h.Sum(nil)) {
		return nil, fmt.Errorf("signature verification failed")
	}

	return data, nil
}
