package repositories

import (
	"context"
	"fmt"

	"github.com/carrybid/carrybid/internal/feed"
	"github.com/uptrace/bun"
)

// Loader reads a changed document back by id so a NOTIFY payload can be
// turned into a feed.Change carrying the document value.
type Loader struct {
	posts *postRepository
	bids  *bidRepository
	convs *conversationRepository
}

func NewLoader(db *bun.DB) *Loader {
	return &Loader{
		posts: NewPostRepository(db),
		bids:  NewBidRepository(db),
		convs: NewConversationRepository(db),
	}
}

func (l *Loader) Load(ctx context.Context, coll feed.Collection, id string) (any, error) {
	switch coll {
	case feed.Posts:
		p, err := l.posts.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *p, nil
	case feed.Bids:
		b, err := l.bids.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *b, nil
	case feed.Conversations:
		c, err := l.convs.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *c, nil
	case feed.Messages:
		m, err := l.convs.Message(ctx, id)
		if err != nil {
			return nil, err
		}
		return *m, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", coll)
	}
}
