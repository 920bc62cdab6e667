package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carrybid/carrybid/backend"
	"github.com/carrybid/carrybid/backend/config"
	"github.com/carrybid/carrybid/backend/handlers"
	"github.com/carrybid/carrybid/backend/services"
	"github.com/carrybid/carrybid/marketplace"
	"github.com/spf13/cobra"
)

const (
	startupTimeout  = 2 * time.Minute
	shutdownTimeout = 15 * time.Second
)

var memoryMode bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(memoryMode)
		if err != nil {
			return err
		}

		slog.Info("Starting carrybid API",
			slog.String("type", "sys"),
			slog.String("version", version),
			slog.String("commit", commit),
			slog.Bool("memory", memoryMode))

		if err := ensureSessionKey(cfg); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), startupTimeout)
		defer cancel()

		var market *marketplace.App
		if memoryMode {
			market, err = marketplace.NewMemory(ctx, cfg)
		} else {
			market, err = marketplace.New(ctx, cfg)
		}
		if err != nil {
			return fmt.Errorf("failed to start marketplace: %w", err)
		}
		defer market.Close()

		webCfg := config.NewWebAppConfig(cfg)
		app := backend.NewServer(&handlers.WebApp{
			Config:         webCfg,
			App:            market,
			OAuthService:   services.NewOAuthService(webCfg),
			SessionService: services.NewSessionService(webCfg),
			Version:        version,
			Commit:         commit,
		})

		address := cfg.Web.Address()
		listenErr := make(chan error, 1)
		go func() {
			slog.Info("Starting backend server", slog.String("type", "sys"), slog.String("address", address))
			listenErr <- app.Listen(address)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case err := <-listenErr:
			return fmt.Errorf("failed to start server: %w", err)
		}

		slog.Info("Shutting down backend server...", slog.String("type", "sys"))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", slog.String("type", "error"), slog.Any("error", err))
		}

		slog.Info("Backend server shutdown complete", slog.String("type", "sys"))
		return nil
	},
}

// ensureSessionKey refuses to run production without a session key and
// generates a throwaway one elsewhere.
func ensureSessionKey(cfg *marketplace.Config) error {
	if cfg.Web.SessionKey != "" {
		return nil
	}
	if cfg.Web.Environment == "production" {
		return errors.New("web.session_key is required in production")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate session key: %w", err)
	}
	cfg.Web.SessionKey = hex.EncodeToString(key)
	slog.Warn("No session key configured, sessions will not survive a restart", slog.String("type", "sys"))
	return nil
}

func init() {
	serveCmd.Flags().BoolVar(&memoryMode, "memory", false, "keep all data in process memory")
	rootCmd.AddCommand(serveCmd)
}
