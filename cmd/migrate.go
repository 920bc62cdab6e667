package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/gateways/database/repositories"
	"github.com/carrybid/carrybid/marketplace/database"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	resetTables bool
	importPath  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create the database schema and optionally import posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer db.Close()

		if resetTables {
			if err := db.ResetAppTables(ctx); err != nil {
				return fmt.Errorf("failed to reset tables: %w", err)
			}
		}

		if err := db.InitializeSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		if importPath != "" {
			if err := importPosts(ctx, db, importPath); err != nil {
				return err
			}
		}

		slog.Info("Migration completed successfully", slog.String("type", "db"))
		return nil
	},
}

// importPosts loads a JSON array of posts, keeping ids when present.
func importPosts(ctx context.Context, db *database.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var posts []listings.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return fmt.Errorf("failed to decode import file: %w", err)
	}

	repo := repositories.NewPostRepository(db.BunDB())
	start := time.Now()
	imported := 0
	for i := range posts {
		post := &posts[i]
		if post.ID == "" {
			post.ID = uuid.NewString()
		}
		if post.Status == "" {
			post.Status = listings.StatusOpen
		}
		if post.CreatedAt.IsZero() {
			post.CreatedAt = start
		}
		if post.UpdatedAt.IsZero() {
			post.UpdatedAt = post.CreatedAt
		}

		if err := repo.Create(ctx, post); err != nil {
			slog.Warn("Skipping post",
				slog.String("type", "db"),
				slog.String("post_id", post.ID),
				slog.Any("error", err))
			continue
		}
		imported++
	}

	slog.Info("Posts imported",
		slog.String("type", "db"),
		slog.Int("imported", imported),
		slog.Int("skipped", len(posts)-imported),
		slog.Duration("took", time.Since(start)))
	return nil
}

func init() {
	migrateCmd.Flags().BoolVar(&resetTables, "reset", false, "truncate every app table before creating the schema")
	migrateCmd.Flags().StringVar(&importPath, "import", "", "JSON file with posts to import")
	rootCmd.AddCommand(migrateCmd)
}
