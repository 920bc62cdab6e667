package listings

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	List(ctx context.Context, filter Filter) ([]Post, error)
}
