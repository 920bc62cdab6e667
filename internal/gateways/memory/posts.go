package memory

import (
	"context"
	"strings"

	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/feed"
)

type Posts struct{ s *Store }

var _ listings.Repository = (*Posts)(nil)

func (r *Posts) Create(_ context.Context, post *listings.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	r.s.publish(feed.Posts, feed.KindAdded, post.ID, *post)
	return nil
}

func (r *Posts) Get(_ context.Context, id string) (*listings.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, listings.ErrNotFound
	}
	return &p, nil
}

func (r *Posts) Update(_ context.Context, post *listings.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[post.ID]; !ok {
		return listings.ErrNotFound
	}
	r.s.posts[post.ID] = *post
	r.s.publish(feed.Posts, feed.KindModified, post.ID, *post)
	return nil
}

func (r *Posts) List(_ context.Context, filter listings.Filter) ([]listings.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]listings.Post, 0)
	for _, p := range r.s.posts {
		if postMatches(p, filter) {
			out = append(out, p)
		}
	}
	sortNewest(out, func(p listings.Post) int64 { return p.CreatedAt.UnixNano() })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func postMatches(p listings.Post, f listings.Filter) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.OwnerID != "" && p.Owner.ID != f.OwnerID {
		return false
	}
	if f.Origin != "" && !containsFold(p.Origin, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(p.Destination, f.Destination) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
