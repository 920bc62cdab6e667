package memory

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/reviews"
)

type Reviews struct{ s *Store }

var _ reviews.Repository = (*Reviews)(nil)

func (r *Reviews) Create(_ context.Context, review *reviews.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r *Reviews) ListByTarget(_ context.Context, userID string) ([]reviews.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]reviews.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.TargetUserID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}
