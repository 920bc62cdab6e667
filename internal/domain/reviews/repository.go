package reviews

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/bids"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Create(ctx context.Context, review *Review) error
	ListByTarget(ctx context.Context, userID string) ([]Review, error)
}

type Bids interface {
	Get(ctx context.Context, id string) (*bids.Bid, error)
}
