package repositories

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type reviewRepository struct {
	db *bun.DB
}

var _ reviews.Repository = &reviewRepository{}

func NewReviewRepository(db *bun.DB) *reviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *reviews.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.NewInsert().Model(models.NewReview(review)).Exec(ctx)
	return handleError("create", "review", nil, err)
}

func (r *reviewRepository) ListByTarget(ctx context.Context, userID string) ([]reviews.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.Review
	err := r.db.NewSelect().
		Model(&rows).
		Where("target_user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("list", "review", nil, err)
	}

	out := make([]reviews.Review, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}
