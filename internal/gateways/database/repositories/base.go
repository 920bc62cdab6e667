package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/logger"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const defaultTimeout = 10 * time.Second

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// handleError maps sql.ErrNoRows to the domain's not-found error and wraps
// everything else.
func handleError(operation, entity string, notFound, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return &RepositoryError{Operation: operation, Entity: entity, Err: err}
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

// notify queues a change for LISTEN subscribers. Inside a transaction it is
// delivered on commit.
func notify(ctx context.Context, db bun.IDB, coll feed.Collection, kind feed.Kind, id string) error {
	payload, err := json.Marshal(models.Change{Collection: coll, Kind: kind, ID: id})
	if err != nil {
		return err
	}

	const query = "SELECT pg_notify(?, ?)"
	ql := logger.NewQueryLogger("notify", query, models.ChangeChannel, string(payload))
	_, err = db.ExecContext(ctx, query, models.ChangeChannel, string(payload))
	ql.Log(err, 0)
	return err
}

// writeTx runs fn in a transaction bounded by the default timeout.
func writeTx(ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}
