package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/feed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const snapshotConcurrency = 4

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// Registry owns the live watchers of every signed-in session.
type Registry struct {
	hub           *feed.Hub
	bids          BidReader
	conversations ConversationReader
	now           func() time.Time

	starts   singleflight.Group
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewRegistry(hub *feed.Hub, bidReader BidReader, conversationReader ConversationReader, opts ...Option) *Registry {
	r := &Registry{
		hub:           hub,
		bids:          bidReader,
		conversations: conversationReader,
		now:           func() time.Time { return time.Now().UTC() },
		sessions:      make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins watching for userID under sessionID. An existing watcher for
// the same session is stopped first, so a reload never doubles the
// subscriptions. The snapshot is replayed through the live rules, which drop
// anything older than the start time.
func (r *Registry) Start(ctx context.Context, userID, sessionID string) (*Session, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	prev := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	startedAt := r.now()
	s := &Session{
		ID:        sessionID,
		UserID:    userID,
		StartedAt: startedAt,
		lastSeen:  startedAt,
		registry:  r,
		cancel:    cancel,
		done:      make(chan struct{}),
		seen:      make(map[string]*Notification),
		convs:     make(map[string]conversations.Conversation),
		placed:    make(map[string]bids.Status),
	}
	s.subs = r.subscribe(s)

	for _, c := range r.snapshot(ctx, userID) {
		s.safeHandle(c)
	}
	go s.loop(loopCtx)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		s.Stop()
		return nil, ErrClosed
	}
	r.sessions[sessionID] = s
	r.mu.Unlock()

	slog.Info("Notification watcher started",
		slog.String("type", "sys"),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
		slog.Time("started_at", s.StartedAt))
	return s, nil
}

// Ensure returns the live watcher of sessionID, starting one if there is
// none. Concurrent first calls for one session share a single start.
func (r *Registry) Ensure(ctx context.Context, userID, sessionID string) (*Session, error) {
	if s, ok := r.Session(sessionID); ok {
		s.Touch()
		return s, nil
	}
	v, err, _ := r.starts.Do(sessionID, func() (any, error) {
		if s, ok := r.Session(sessionID); ok {
			return s, nil
		}
		return r.Start(ctx, userID, sessionID)
	})
	if err != nil {
		return nil, err
	}
	s := v.(*Session)
	s.Touch()
	return s, nil
}

func (r *Registry) subscribe(s *Session) []*feed.Subscription {
	userID := s.UserID
	return []*feed.Subscription{
		r.hub.Subscribe(feed.Query{
			Key:        s.ID + "/bids/placed",
			Collection: feed.Bids,
			Match: func(c feed.Change) bool {
				b, ok := bidOf(c)
				return ok && b.Bidder.ID == userID
			},
		}),
		r.hub.Subscribe(feed.Query{
			Key:        s.ID + "/bids/received",
			Collection: feed.Bids,
			Match: func(c feed.Change) bool {
				b, ok := bidOf(c)
				return ok && b.PostOwnerID == userID && c.Kind == feed.KindAdded
			},
		}),
		r.hub.Subscribe(feed.Query{
			Key:        s.ID + "/conversations",
			Collection: feed.Conversations,
			Match: func(c feed.Change) bool {
				conv, ok := conversationOf(c)
				if !ok || !conv.Has(userID) {
					return false
				}
				// the message query matches on membership before the loop
				// gets to this change
				s.remember(conv)
				return true
			},
		}),
		r.hub.Subscribe(feed.Query{
			Key:        s.ID + "/messages",
			Collection: feed.Messages,
			Match: func(c feed.Change) bool {
				m, ok := messageOf(c)
				return ok && c.Kind == feed.KindAdded && m.SenderID != userID && s.member(m.ConversationID)
			},
		}),
	}
}

// snapshot loads the records the watcher starts from. Failures are logged;
// the watcher still runs on the live feed.
func (r *Registry) snapshot(ctx context.Context, userID string) []feed.Change {
	var (
		placed, received []bids.Bid
		convs            []conversations.Conversation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		placed, err = r.bids.ListByBidder(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		received, err = r.bids.ListByPostOwner(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		convs, err = r.conversations.ListByParticipant(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to load notification snapshot",
			slog.String("type", "error"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil
	}

	messages := make([][]conversations.Message, len(convs))
	mg, mctx := errgroup.WithContext(ctx)
	mg.SetLimit(snapshotConcurrency)
	for i, conv := range convs {
		i, conv := i, conv
		mg.Go(func() error {
			list, err := r.conversations.Messages(mctx, conv.ID)
			if err != nil {
				return err
			}
			sortByCreated(list)
			messages[i] = list
			return nil
		})
	}
	if err := mg.Wait(); err != nil {
		slog.Error("Failed to load message snapshot",
			slog.String("type", "error"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}

	changes := make([]feed.Change, 0, len(placed)+len(received)+len(convs))
	for _, b := range placed {
		changes = append(changes, feed.Change{Collection: feed.Bids, Kind: feed.KindAdded, ID: b.ID, Doc: b})
	}
	for _, b := range received {
		changes = append(changes, feed.Change{Collection: feed.Bids, Kind: feed.KindAdded, ID: b.ID, Doc: b})
	}
	for i, conv := range convs {
		changes = append(changes, feed.Change{Collection: feed.Conversations, Kind: feed.KindAdded, ID: conv.ID, Doc: conv})
		for _, m := range messages[i] {
			changes = append(changes, feed.Change{Collection: feed.Messages, Kind: feed.KindAdded, ID: m.ID, Doc: m})
		}
	}
	return changes
}

func (r *Registry) Session(sessionID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	return s, ok
}

func (r *Registry) Stop(sessionID string) {
	r.mu.Lock()
	s := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

// Emit delivers n to every live session of userID. A notification for a
// record already delivered is merged into the existing entry.
func (r *Registry) Emit(userID string, n Notification) {
	r.mu.Lock()
	targets := make([]*Session, 0, 1)
	for _, s := range r.sessions {
		if s.UserID == userID {
			targets = append(targets, s)
		}
	}
	r.mu.Unlock()

	for _, s := range targets {
		s.deliver(n)
	}
}

// Reap stops every watcher with no attached stream that has not been touched
// within idle, and returns how many it stopped.
func (r *Registry) Reap(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.idle(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Stop()
	}
	if len(stale) > 0 {
		slog.Info("Idle notification watchers stopped",
			slog.String("type", "sys"),
			slog.Int("count", len(stale)),
			slog.Duration("idle", idle))
	}
	return len(stale)
}

// StartReaper runs Reap every interval until ctx is done.
func (r *Registry) StartReaper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Reap(idle)
			}
		}
	}()
}

func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
