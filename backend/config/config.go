package config

import (
	"github.com/carrybid/carrybid/marketplace"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *marketplace.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *marketplace.Config) *WebAppConfig {
	environment := cfg.Web.Environment
	if environment == "" {
		environment = "development"
	}
	return &WebAppConfig{
		Config:      cfg,
		Debug:       environment != "production",
		Environment: environment,
	}
}

// Secure reports whether cookies must be sent over TLS only.
func (w *WebAppConfig) Secure() bool {
	return w.Environment == "production"
}

func (w *WebAppConfig) GetWebConfig() marketplace.WebConfig {
	return w.Config.Web
}

func (w *WebAppConfig) GetAuthConfig() marketplace.AuthConfig {
	return w.Config.Auth
}
