package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/carrybid/carrybid/marketplace"
	"github.com/carrybid/carrybid/marketplace/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "carrybid",
	Short:         "carrybid delivery marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.String("type", "error"), slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfig reads the config file and installs the log handler. A missing
// file falls back to defaults only when allowMissing is set.
func loadConfig(allowMissing bool) (*marketplace.Config, error) {
	cfg, err := marketplace.LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) && allowMissing {
		cfg, err = marketplace.DefaultConfig(), nil
		defer slog.Warn("Config file not found, using defaults",
			slog.String("type", "sys"),
			slog.String("path", configPath))
	}
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(logger.NewHandler("carrybid", logger.ParseLevel(cfg.Log.Level))))
	return cfg, nil
}
