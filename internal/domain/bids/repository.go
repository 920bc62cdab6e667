package bids

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/listings"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Create(ctx context.Context, bid *Bid) error
	Get(ctx context.Context, id string) (*Bid, error)
	Update(ctx context.Context, bid *Bid) error
	Delete(ctx context.Context, id string) error
	// FindActive returns the non-rejected bid by bidderID on postID, or
	// ErrNotFound. The newest wins if more than one exists.
	FindActive(ctx context.Context, postID, bidderID string) (*Bid, error)
	ListByPost(ctx context.Context, postID string) ([]Bid, error)
	ListByBidder(ctx context.Context, bidderID string) ([]Bid, error)
	ListByPostOwner(ctx context.Context, ownerID string) ([]Bid, error)
	CountByPost(ctx context.Context, postID string) (int, error)
}

// Posts resolves the post a bid is placed on.
type Posts interface {
	Get(ctx context.Context, id string) (*listings.Post, error)
}
