// Package memory keeps every aggregate in process memory and publishes each
// write to the live feed. It backs tests and the serve command's dev mode.
package memory

import (
	"sync"
	"time"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/carrybid/carrybid/internal/feed"
)

// Store is one lock over all collections, so multi-collection writes such as
// archiving are atomic.
type Store struct {
	mu  sync.RWMutex
	hub *feed.Hub

	posts         map[string]listings.Post
	bids          map[string]bids.Bid
	conversations map[string]conversations.Conversation
	messages      map[string][]conversations.Message
	users         map[string]users.User
	reviews       []reviews.Review
	archive       map[string]moderation.Archive
}

func New(hub *feed.Hub) *Store {
	return &Store{
		hub:           hub,
		posts:         make(map[string]listings.Post),
		bids:          make(map[string]bids.Bid),
		conversations: make(map[string]conversations.Conversation),
		messages:      make(map[string][]conversations.Message),
		users:         make(map[string]users.User),
		archive:       make(map[string]moderation.Archive),
	}
}

// publish must be called with mu held so subscribers see writes in order.
func (s *Store) publish(coll feed.Collection, kind feed.Kind, id string, doc any) {
	if s.hub == nil {
		return
	}
	if kind == feed.KindRemoved {
		doc = nil
	}
	s.hub.Publish(feed.Change{Collection: coll, Kind: kind, ID: id, Doc: doc, At: time.Now().UTC()})
}

func (s *Store) Posts() *Posts { return &Posts{s} }

func (s *Store) Bids() *Bids { return &Bids{s} }

func (s *Store) Conversations() *Conversations { return &Conversations{s} }

func (s *Store) Users() *Users { return &Users{s} }

func (s *Store) Reviews() *Reviews { return &Reviews{s} }

func (s *Store) Archive() *Archive { return &Archive{s} }
