package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carrybid/carrybid/backend/config"
	"github.com/carrybid/carrybid/internal/domain/users"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// GoogleUser is the OpenID Connect userinfo payload.
type GoogleUser struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (g *GoogleUser) Identity() users.Identity {
	return users.Identity{
		Subject:       g.Subject,
		Name:          g.Name,
		Avatar:        g.Picture,
		Email:         g.Email,
		EmailVerified: g.EmailVerified,
	}
}

// OAuthService handles Google OAuth2 sign-in
type OAuthService struct {
	config     *config.WebAppConfig
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userInfoURL string
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(cfg *config.WebAppConfig) *OAuthService {
	return &OAuthService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authURL:     googleAuthURL,
		tokenURL:    googleTokenURL,
		userInfoURL: googleUserInfoURL,
	}
}

func (o *OAuthService) Enabled() bool {
	return o.config.Config.Auth.Google.Enabled()
}

// GenerateAuthURL generates the Google authorization URL
func (o *OAuthService) GenerateAuthURL(state string) string {
	google := o.config.Config.Auth.Google

	params := url.Values{}
	params.Set("client_id", google.ClientID)
	params.Set("redirect_uri", google.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(google.Scopes, " "))
	params.Set("state", state)
	params.Set("prompt", "select_account")

	return o.authURL + "?" + params.Encode()
}

// ExchangeCodeForToken exchanges an authorization code for an access token
func (o *OAuthService) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	google := o.config.Config.Auth.Google

	data := url.Values{}
	data.Set("client_id", google.ClientID)
	data.Set("client_secret", google.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", google.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code for token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("google token error: %s", string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return tokenResp.AccessToken, nil
}

// GetUserInfo fetches the signed-in Google account
func (o *OAuthService) GetUserInfo(ctx context.Context, accessToken string) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("google userinfo error: %s", string(body))
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("google account has no email")
	}

	return &user, nil
}

// GenerateState generates a random state parameter for OAuth2
func (o *OAuthService) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
