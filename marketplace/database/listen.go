package database

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/jackc/pgx/v5"
)

const listenRetryInterval = 2 * time.Second

// Loader reads a changed document back by id.
type Loader interface {
	Load(ctx context.Context, coll feed.Collection, id string) (any, error)
}

// Listen forwards NOTIFY payloads on models.ChangeChannel to the hub until
// ctx is cancelled. Lost connections are re-established.
func (db *DB) Listen(ctx context.Context, hub *feed.Hub, loader Loader) {
	for {
		err := db.listenOnce(ctx, hub, loader)
		if ctx.Err() != nil {
			return
		}
		slog.Error("Change listener disconnected",
			slog.String("type", "db"),
			slog.String("channel", models.ChangeChannel),
			slog.Any("error", err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(listenRetryInterval):
		}
	}
}

func (db *DB) listenOnce(ctx context.Context, hub *feed.Hub, loader Loader) error {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{models.ChangeChannel}.Sanitize()); err != nil {
		return err
	}
	slog.Info("Listening for changes",
		slog.String("type", "db"),
		slog.String("channel", models.ChangeChannel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			// Drop the connection rather than return it with a LISTEN attached.
			conn.Hijack().Close(context.Background())
			return err
		}
		db.forward(ctx, hub, loader, n.Payload)
	}
}

func (db *DB) forward(ctx context.Context, hub *feed.Hub, loader Loader, payload string) {
	var msg models.Change
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		slog.Warn("Malformed change payload",
			slog.String("type", "db"),
			slog.String("payload", payload),
			slog.Any("error", err))
		return
	}

	change := feed.Change{Collection: msg.Collection, Kind: msg.Kind, ID: msg.ID, At: time.Now().UTC()}
	if msg.Kind != feed.KindRemoved {
		doc, err := loader.Load(ctx, msg.Collection, msg.ID)
		if err != nil {
			// Removed again before we could read it.
			if !errors.Is(err, context.Canceled) {
				slog.Debug("Changed document not loadable",
					slog.String("type", "db"),
					slog.String("collection", string(msg.Collection)),
					slog.String("id", msg.ID),
					slog.Any("error", err))
			}
			return
		}
		change.Doc = doc
	}
	hub.Publish(change)
}
