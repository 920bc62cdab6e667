package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type postRepository struct {
	db *bun.DB
}

var _ listings.Repository = &postRepository{}

func NewPostRepository(db *bun.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *listings.Post) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(models.NewPost(post)).Exec(ctx); err != nil {
			return err
		}
		return notify(ctx, tx, feed.Posts, feed.KindAdded, post.ID)
	})
	return handleError("create", "post", listings.ErrNotFound, err)
}

func (r *postRepository) Get(ctx context.Context, id string) (*listings.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.Post)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, handleError("get", "post", listings.ErrNotFound, err)
	}
	p := m.Domain()
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, post *listings.Post) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model(models.NewPost(post)).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return listings.ErrNotFound
		}
		return notify(ctx, tx, feed.Posts, feed.KindModified, post.ID)
	})
	if errors.Is(err, listings.ErrNotFound) {
		return err
	}
	return handleError("update", "post", listings.ErrNotFound, err)
}

func (r *postRepository) List(ctx context.Context, filter listings.Filter) ([]listings.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.Post
	q := r.db.NewSelect().Model(&rows).Order("created_at DESC")
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != "" {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Origin != "" {
		q = q.Where("origin ILIKE ?", fmt.Sprintf("%%%s%%", filter.Origin))
	}
	if filter.Destination != "" {
		q = q.Where("destination ILIKE ?", fmt.Sprintf("%%%s%%", filter.Destination))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, handleError("list", "post", listings.ErrNotFound, err)
	}

	out := make([]listings.Post, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}
