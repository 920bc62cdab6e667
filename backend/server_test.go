package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carrybid/carrybid/backend"
	"github.com/carrybid/carrybid/backend/config"
	"github.com/carrybid/carrybid/backend/handlers"
	"github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/services"
	"github.com/carrybid/carrybid/internal/domain/acceptance"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/carrybid/carrybid/marketplace"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@carrybid.test"

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *models.APIError `json:"error"`
}

type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newServer(t *testing.T) *fiber.App {
	t.Helper()

	cfg := marketplace.DefaultConfig()
	cfg.Web.SessionKey = "test-session-key"
	cfg.Auth.Admins = []string{adminEmail}

	market, err := marketplace.NewMemory(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(market.Close)

	webCfg := config.NewWebAppConfig(cfg)
	return backend.NewServer(&handlers.WebApp{
		Config:         webCfg,
		App:            market,
		SessionService: services.NewSessionService(webCfg),
		OAuthService:   services.NewOAuthService(webCfg),
		Version:        "test",
	})
}

func anonymous(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app}
}

// register signs up a credential user and keeps the session cookie.
func register(t *testing.T, app *fiber.App, name, email string) *client {
	t.Helper()
	c := anonymous(t, app)
	status, env := c.json(http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %+v", email, env.Error)
	require.NotNil(t, c.cookie, "session cookie not set")
	return c
}

func (c *client) send(req *http.Request) (int, envelope) {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == services.SessionCookieName && cookie.Value != "" {
			c.cookie = cookie
		}
	}

	var env envelope
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(body) > 0 {
		require.NoError(c.t, json.Unmarshal(body, &env), "body: %s", body)
	}
	return resp.StatusCode, env
}

func (c *client) json(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return c.send(req)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func createItemPost(t *testing.T, c *client) listings.Post {
	t.Helper()
	status, env := c.json(http.MethodPost, "/api/posts", listings.Input{
		Type:          listings.TypeItem,
		Origin:        "Delhi",
		Destination:   "Mumbai",
		DepartureDate: time.Now().Add(24 * time.Hour).UTC(),
		ItemName:      "Documents",
		ItemWeight:    2,
	})
	require.Equal(t, http.StatusCreated, status, "%+v", env.Error)
	return decode[listings.Post](t, env)
}

func placeBid(t *testing.T, c *client, postID string, amount int64, message string) bids.Bid {
	t.Helper()
	status, env := c.json(http.MethodPost, "/api/posts/"+postID+"/bids", models.BidRequest{Amount: amount, Message: message})
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	return decode[bids.Bid](t, env)
}

type inbox struct {
	Notifications []notifications.Notification `json:"notifications"`
	Unread        int                          `json:"unread"`
}

func TestServer_Health(t *testing.T) {
	app := newServer(t)

	status, env := anonymous(t, app).json(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	health := decode[models.HealthCheck](t, env)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)

	status, env = anonymous(t, app).json(http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestServer_AuthRequired(t *testing.T) {
	app := newServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/me/bids"},
		{http.MethodGet, "/api/conversations"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/admin/archive"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, env := anonymous(t, app).json(tt.method, tt.path, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.False(t, env.Success)
		})
	}
}

func TestServer_RegisterAndLogin(t *testing.T) {
	app := newServer(t)
	register(t, app, "Asha", "asha@carrybid.test")

	status, env := anonymous(t, app).json(http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Name: "Asha again", Email: "ASHA@carrybid.test", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	wrong := anonymous(t, app)
	status, _ = wrong.json(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "asha@carrybid.test", Password: "nope-nope"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Nil(t, wrong.cookie)

	c := anonymous(t, app)
	status, _ = c.json(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "asha@carrybid.test", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, status)

	status, env = c.json(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		User users.User `json:"user"`
	}](t, env)
	assert.Equal(t, "Asha", me.User.Name)
	assert.False(t, me.User.IsAdmin)
}

func TestServer_CreatePostValidation(t *testing.T) {
	app := newServer(t)
	c := register(t, app, "Asha", "asha@carrybid.test")

	status, env := c.json(http.MethodPost, "/api/posts", listings.Input{
		Type:          listings.TypeItem,
		Destination:   "Mumbai",
		DepartureDate: time.Now().Add(time.Hour),
		ItemName:      "Documents",
		ItemWeight:    2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "origin")
}

func TestServer_BidAcceptanceFlow(t *testing.T) {
	app := newServer(t)
	poster := register(t, app, "Priya", "priya@carrybid.test")
	carrier := register(t, app, "Ravi", "ravi@carrybid.test")

	post := createItemPost(t, poster)
	first := placeBid(t, carrier, post.ID, 500, "can carry tomorrow")
	again := placeBid(t, carrier, post.ID, 450, "can carry tomorrow")
	assert.Equal(t, first.ID, again.ID, "active bid is updated in place")
	assert.EqualValues(t, 450, again.Amount)

	status, env := anonymous(t, app).json(http.MethodGet, "/api/posts/"+post.ID, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[models.PostDetail](t, env)
	assert.Equal(t, 1, detail.BidCount)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "Priya", detail.Owner.Name)

	status, _ = carrier.json(http.MethodPost, "/api/bids/"+first.ID+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, status, "only the post owner accepts")

	status, env = poster.json(http.MethodPost, "/api/bids/"+first.ID+"/accept", nil)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	result := decode[acceptance.Result](t, env)
	assert.Equal(t, bids.StatusAccepted, result.Bid.Status)
	assert.True(t, result.ConversationCreated)

	status, env = carrier.json(http.MethodGet, "/api/conversations", nil)
	require.Equal(t, http.StatusOK, status)
	convs := decode[[]conversations.Conversation](t, env)
	require.Len(t, convs, 1)
	assert.Equal(t, result.ConversationID, convs[0].ID)
	assert.Equal(t, acceptance.DefaultSeed, convs[0].LastMessage)

	status, env = carrier.json(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[inbox](t, env)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, notifications.KindBidAccepted, got.Notifications[0].Kind)
	assert.Equal(t, result.ConversationID, got.Notifications[0].ConversationID)

	require.Eventually(t, func() bool {
		_, env := poster.json(http.MethodGet, "/api/notifications", nil)
		for _, n := range decode[inbox](t, env).Notifications {
			if n.Kind == notifications.KindBidReceived && n.BidID == first.ID {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond, "poster is told about the new bid")

	status, env = carrier.json(http.MethodPost, "/api/conversations/"+result.ConversationID+"/messages", models.MessageRequest{Text: "Pickup at 9?"})
	require.Equal(t, http.StatusCreated, status, "%+v", env.Error)

	status, env = poster.json(http.MethodGet, "/api/conversations/"+result.ConversationID+"/messages", nil)
	require.Equal(t, http.StatusOK, status)
	msgs := decode[[]conversations.Message](t, env)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Pickup at 9?", msgs[0].Text)

	outsider := register(t, app, "Kabir", "kabir@carrybid.test")
	status, _ = outsider.json(http.MethodGet, "/api/conversations/"+result.ConversationID+"/messages", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestServer_RejectThenAcceptConflicts(t *testing.T) {
	app := newServer(t)
	poster := register(t, app, "Priya", "priya@carrybid.test")
	carrier := register(t, app, "Ravi", "ravi@carrybid.test")

	post := createItemPost(t, poster)
	bid := placeBid(t, carrier, post.ID, 500, "")

	status, _ := poster.json(http.MethodPost, "/api/bids/"+bid.ID+"/reject", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := poster.json(http.MethodPost, "/api/bids/"+bid.ID+"/accept", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	status, env = carrier.json(http.MethodGet, "/api/me/bids", nil)
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]bids.Bid](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, bids.StatusRejected, mine[0].Status)
}

func TestServer_AdminArchiveRoundTrip(t *testing.T) {
	app := newServer(t)
	admin := register(t, app, "Admin", adminEmail)
	poster := register(t, app, "Priya", "priya@carrybid.test")
	first := register(t, app, "Ravi", "ravi@carrybid.test")
	second := register(t, app, "Meera", "meera@carrybid.test")

	post := createItemPost(t, poster)
	placeBid(t, first, post.ID, 500, "")
	placeBid(t, second, post.ID, 650, "")

	status, _ := poster.json(http.MethodDelete, "/api/admin/posts/"+post.ID, models.ReasonRequest{Reason: "spam"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := admin.json(http.MethodDelete, "/api/admin/posts/"+post.ID, models.ReasonRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "reason is required")

	status, env = admin.json(http.MethodDelete, "/api/admin/posts/"+post.ID, models.ReasonRequest{Reason: "spam"})
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	entry := decode[moderation.Archive](t, env)
	assert.Len(t, entry.Bids, 2)
	assert.Equal(t, "spam", entry.Reason)

	status, _ = anonymous(t, app).json(http.MethodGet, "/api/posts/"+post.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = admin.json(http.MethodPost, "/api/admin/archive/"+entry.ID+"/restore", nil)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)

	status, env = anonymous(t, app).json(http.MethodGet, "/api/posts/"+post.ID, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[models.PostDetail](t, env)
	assert.Equal(t, 2, detail.BidCount)

	status, env = admin.json(http.MethodGet, "/api/admin/archive", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]moderation.Archive](t, env))
}

func TestServer_BannedUserRefused(t *testing.T) {
	app := newServer(t)
	admin := register(t, app, "Admin", adminEmail)
	user := register(t, app, "Ravi", "ravi@carrybid.test")

	status, env := user.json(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		User users.User `json:"user"`
	}](t, env)

	status, _ = admin.json(http.MethodPost, "/api/admin/users/"+me.User.ID+"/ban", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = user.json(http.MethodGet, "/api/me/bids", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = anonymous(t, app).json(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "ravi@carrybid.test", Password: "correct-horse"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestServer_IdentityVerification(t *testing.T) {
	app := newServer(t)
	admin := register(t, app, "Admin", adminEmail)
	user := register(t, app, "Ravi", "ravi@carrybid.test")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("id_type", string(users.IDPassport)))
	for _, field := range []string{"front_image", "back_image"} {
		part, err := form.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/me/verification", &body)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	status, env := user.send(req)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	verification := decode[users.Verification](t, env)
	assert.Equal(t, users.VerificationPending, verification.Status)
	require.True(t, strings.HasPrefix(verification.FrontImage, "http://localhost:8080/uploads/identity/"))

	image := strings.TrimPrefix(verification.FrontImage, "http://localhost:8080")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, image, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))

	status, env = admin.json(http.MethodGet, "/api/admin/verifications", nil)
	require.Equal(t, http.StatusOK, status)
	pending := decode[[]users.User](t, env)
	require.Len(t, pending, 1)

	path := fmt.Sprintf("/api/admin/verifications/%s/reject", pending[0].ID)
	status, _ = admin.json(http.MethodPost, path, models.ReasonRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = admin.json(http.MethodPost, fmt.Sprintf("/api/admin/verifications/%s/approve", pending[0].ID), nil)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	assert.Equal(t, users.VerificationApproved, decode[users.User](t, env).Verification.Status)

	status, _ = admin.json(http.MethodPost, fmt.Sprintf("/api/admin/verifications/%s/approve", pending[0].ID), nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestServer_LocationSuggest(t *testing.T) {
	app := newServer(t)

	status, env := anonymous(t, app).json(http.MethodGet, "/api/locations?q=mum&limit=3", nil)
	require.Equal(t, http.StatusOK, status)
	matches := decode[[]string](t, env)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Mumbai", matches[0])
}
