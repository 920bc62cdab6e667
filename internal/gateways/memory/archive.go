package memory

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/feed"
)

type Archive struct{ s *Store }

var _ moderation.Repository = (*Archive)(nil)

func (r *Archive) Archive(_ context.Context, postID string, entry moderation.Archive) (*moderation.Archive, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[postID]
	if !ok {
		return nil, listings.ErrNotFound
	}
	entry.PostID = postID
	entry.Post = post
	entry.Bids = make([]bids.Bid, 0)
	for _, b := range r.s.bids {
		if b.PostID == postID {
			entry.Bids = append(entry.Bids, b)
		}
	}
	sortOldest(entry.Bids, func(b bids.Bid) int64 { return b.CreatedAt.UnixNano() })

	r.s.archive[entry.ID] = entry
	for _, b := range entry.Bids {
		delete(r.s.bids, b.ID)
		r.s.publish(feed.Bids, feed.KindRemoved, b.ID, nil)
	}
	delete(r.s.posts, postID)
	r.s.publish(feed.Posts, feed.KindRemoved, postID, nil)
	return &entry, nil
}

func (r *Archive) Restore(_ context.Context, archiveID string) (*moderation.Archive, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.archive[archiveID]
	if !ok {
		return nil, moderation.ErrArchiveNotFound
	}
	if _, exists := r.s.posts[entry.PostID]; exists {
		return nil, moderation.ErrPostExists
	}

	r.s.posts[entry.PostID] = entry.Post
	r.s.publish(feed.Posts, feed.KindAdded, entry.PostID, entry.Post)
	for _, b := range entry.Bids {
		r.s.bids[b.ID] = b
		r.s.publish(feed.Bids, feed.KindAdded, b.ID, b)
	}
	delete(r.s.archive, archiveID)
	return &entry, nil
}

func (r *Archive) GetArchive(_ context.Context, id string) (*moderation.Archive, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.archive[id]
	if !ok {
		return nil, moderation.ErrArchiveNotFound
	}
	return &e, nil
}

func (r *Archive) ListArchive(_ context.Context) ([]moderation.Archive, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]moderation.Archive, 0, len(r.s.archive))
	for _, e := range r.s.archive {
		out = append(out, e)
	}
	sortNewest(out, func(e moderation.Archive) int64 { return e.DeletedAt.UnixNano() })
	return out, nil
}
