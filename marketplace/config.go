package marketplace

import (
	"fmt"
	"os"
	"time"

	"github.com/carrybid/carrybid/internal/domain/acceptance"
	"github.com/carrybid/carrybid/internal/domain/locations"
	"github.com/carrybid/carrybid/internal/gateways/mongodb"
	"github.com/carrybid/carrybid/marketplace/database"
	"github.com/carrybid/carrybid/marketplace/services"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig is the configuration a missing key falls back to.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "carrybid",
			PoolSize: 10,
		},
		Mongo: mongodb.Config{Database: "carrybid"},
		Web: WebConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			Environment:  "development",
			AllowOrigins: "http://localhost:3000",
			FrontendURL:  "http://localhost:3000",
			PublicURL:    "http://localhost:8080",
		},
		Auth: AuthConfig{
			Google: OAuthConfig{Scopes: []string{"openid", "email", "profile"}},
		},
		Market: MarketConfig{
			AcceptSeed: acceptance.DefaultSeed,
			CacheSize:        1024,
			FeedBuffer:       64,
			WatcherIdleHours: 24,
		},
	}
}

type Config struct {
	Log    LogConfig             `toml:"log"`
	DB     database.DBConfig     `toml:"db"`
	Mongo  mongodb.Config        `toml:"mongo"`
	Spaces services.SpacesConfig `toml:"spaces"`
	Web    WebConfig             `toml:"web"`
	Auth   AuthConfig            `toml:"auth"`
	Market MarketConfig          `toml:"market"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type WebConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Environment  string `toml:"environment"`
	SessionKey   string `toml:"session_key"`
	AllowOrigins string `toml:"allow_origins"`
	FrontendURL  string `toml:"frontend_url"`
	// PublicURL is this server's own base URL; in-memory uploads are served
	// under it.
	PublicURL string `toml:"public_url"`
}

func (w WebConfig) Address() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type AuthConfig struct {
	Admins []string    `toml:"admins"`
	Google OAuthConfig `toml:"google"`
}

type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`
}

func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != ""
}

type MarketConfig struct {
	// AllowSelfBid defaults to true when unset.
	AllowSelfBid *bool    `toml:"allow_self_bid"`
	AcceptSeed   string   `toml:"accept_seed"`
	Cities       []string `toml:"cities"`
	CacheSize    int      `toml:"cache_size"`
	FeedBuffer   int      `toml:"feed_buffer"`
	// WatcherIdleHours is how long a notification watcher with no requests
	// and no open stream is kept.
	WatcherIdleHours int `toml:"watcher_idle_hours"`
}

func (m MarketConfig) SelfBid() bool {
	return m.AllowSelfBid == nil || *m.AllowSelfBid
}

func (m MarketConfig) WatcherIdle() time.Duration {
	if m.WatcherIdleHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(m.WatcherIdleHours) * time.Hour
}

func (m MarketConfig) CityList() []string {
	if len(m.Cities) > 0 {
		return m.Cities
	}
	return locations.DefaultCities
}
