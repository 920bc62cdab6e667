package memory

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/feed"
)

type Bids struct{ s *Store }

var _ bids.Repository = (*Bids)(nil)

func (r *Bids) Create(_ context.Context, bid *bids.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bids[bid.ID] = *bid
	r.s.publish(feed.Bids, feed.KindAdded, bid.ID, *bid)
	return nil
}

func (r *Bids) Get(_ context.Context, id string) (*bids.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bids[id]
	if !ok {
		return nil, bids.ErrNotFound
	}
	return &b, nil
}

func (r *Bids) Update(_ context.Context, bid *bids.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bids[bid.ID]; !ok {
		return bids.ErrNotFound
	}
	r.s.bids[bid.ID] = *bid
	r.s.publish(feed.Bids, feed.KindModified, bid.ID, *bid)
	return nil
}

func (r *Bids) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bids[id]; !ok {
		return bids.ErrNotFound
	}
	delete(r.s.bids, id)
	r.s.publish(feed.Bids, feed.KindRemoved, id, nil)
	return nil
}

func (r *Bids) FindActive(_ context.Context, postID, bidderID string) (*bids.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var active *bids.Bid
	for _, b := range r.s.bids {
		b := b
		if b.PostID != postID || b.Bidder.ID != bidderID || !b.Active() {
			continue
		}
		if active == nil || b.CreatedAt.After(active.CreatedAt) {
			active = &b
		}
	}
	if active == nil {
		return nil, bids.ErrNotFound
	}
	return active, nil
}

func (r *Bids) list(match func(bids.Bid) bool) []bids.Bid {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]bids.Bid, 0)
	for _, b := range r.s.bids {
		if match(b) {
			out = append(out, b)
		}
	}
	sortNewest(out, func(b bids.Bid) int64 { return b.CreatedAt.UnixNano() })
	return out
}

func (r *Bids) ListByPost(_ context.Context, postID string) ([]bids.Bid, error) {
	return r.list(func(b bids.Bid) bool { return b.PostID == postID }), nil
}

func (r *Bids) ListByBidder(_ context.Context, bidderID string) ([]bids.Bid, error) {
	return r.list(func(b bids.Bid) bool { return b.Bidder.ID == bidderID }), nil
}

func (r *Bids) ListByPostOwner(_ context.Context, ownerID string) ([]bids.Bid, error) {
	return r.list(func(b bids.Bid) bool { return b.PostOwnerID == ownerID }), nil
}

func (r *Bids) CountByPost(ctx context.Context, postID string) (int, error) {
	list, _ := r.ListByPost(ctx, postID)
	return len(list), nil
}
