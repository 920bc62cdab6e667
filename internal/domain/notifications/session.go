package notifications

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/google/uuid"
)

// Session is one user's live watcher. Events whose record timestamp predates
// StartedAt are dropped so a reattached watcher does not replay history.
type Session struct {
	ID        string
	UserID    string
	StartedAt time.Time

	registry *Registry
	subs     []*feed.Subscription
	cancel   context.CancelFunc
	done     chan struct{}

	mu       sync.Mutex
	inbox    []*Notification
	seen     map[string]*Notification
	convs    map[string]conversations.Conversation
	placed   map[string]bids.Status
	lastSeen time.Time
	granted  bool
	pusher   Pusher
	stopOnce sync.Once
}

// List returns the inbox, newest first.
func (s *Session) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, 0, len(s.inbox))
	for i := len(s.inbox) - 1; i >= 0; i-- {
		out = append(out, *s.inbox[i])
	}
	return out
}

func (s *Session) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, entry := range s.inbox {
		if !entry.Read {
			n++
		}
	}
	return n
}

func (s *Session) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.inbox {
		if entry.ID == id {
			entry.Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *Session) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.inbox {
		entry.Read = true
	}
}

// SetPermission records whether the client allowed push delivery.
func (s *Session) SetPermission(granted bool) {
	s.mu.Lock()
	s.granted = granted
	s.mu.Unlock()
}

func (s *Session) Permission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted
}

// Attach routes future notifications to p, replacing any previous pusher.
func (s *Session) Attach(p Pusher) {
	s.mu.Lock()
	s.pusher = p
	s.mu.Unlock()
}

// Detach removes p if it is still the attached pusher.
func (s *Session) Detach(p Pusher) {
	s.mu.Lock()
	if s.pusher == p {
		s.pusher = nil
	}
	s.mu.Unlock()
}

// Touch marks the session as in use at the registry's current time.
func (s *Session) Touch() {
	now := s.registry.now()
	s.mu.Lock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	s.mu.Unlock()
}

// idle reports whether the session has no attached stream and has not been
// touched since cutoff.
func (s *Session) idle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pusher == nil && s.lastSeen.Before(cutoff)
}

// Stop closes every subscription and waits for the watch loop to exit.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		for _, sub := range s.subs {
			sub.Close()
		}
		<-s.done
	})
}

func (s *Session) deliver(n Notification) {
	if n.key == "" {
		n.key = uuid.NewString()
	}

	s.mu.Lock()
	if prev, ok := s.seen[n.key]; ok {
		if prev.ConversationID == "" {
			prev.ConversationID = n.ConversationID
		}
		s.mu.Unlock()
		return
	}

	n.ID = uuid.NewString()
	n.UserID = s.UserID
	n.CreatedAt = s.registry.now()
	entry := &n
	s.inbox = append(s.inbox, entry)
	s.seen[n.key] = entry
	pusher, granted := s.pusher, s.granted
	s.mu.Unlock()

	slog.Debug("Notification delivered",
		slog.String("type", "sys"),
		slog.String("user_id", s.UserID),
		slog.String("session_id", s.ID),
		slog.String("kind", string(n.Kind)))

	if !granted || pusher == nil {
		return
	}
	if err := pusher.Push(n); err != nil {
		slog.Warn("Failed to push notification",
			slog.String("type", "sys"),
			slog.String("session_id", s.ID),
			slog.Any("error", err))
	}
}

func (s *Session) after(t time.Time) bool {
	return !t.Before(s.StartedAt)
}

func (s *Session) handle(c feed.Change) {
	switch c.Collection {
	case feed.Bids:
		b, ok := bidOf(c)
		if !ok {
			return
		}
		if b.Bidder.ID == s.UserID && s.accepted(b, c.Kind) {
			if s.after(b.UpdatedAt) {
				s.deliver(BidAccepted(b, ""))
			}
			return
		}
		if b.PostOwnerID == s.UserID && c.Kind == feed.KindAdded && s.after(b.CreatedAt) {
			s.deliver(BidReceived(b))
		}

	case feed.Conversations:
		conv, ok := conversationOf(c)
		if !ok || !conv.Has(s.UserID) {
			return
		}
		s.remember(conv)

	case feed.Messages:
		m, ok := messageOf(c)
		if !ok || c.Kind != feed.KindAdded || m.SenderID == s.UserID || !s.after(m.CreatedAt) {
			return
		}
		s.mu.Lock()
		conv, ok := s.convs[m.ConversationID]
		s.mu.Unlock()
		if !ok {
			return
		}
		s.deliver(NewMessage(s.UserID, conv, m))
	}
}

// accepted records the latest status of one of the user's own bids and
// reports whether this change moved it into accepted. A bid first seen
// already accepted counts as a move; the start-time rule then decides.
func (s *Session) accepted(b bids.Bid, kind feed.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, known := s.placed[b.ID]
	if kind == feed.KindRemoved {
		delete(s.placed, b.ID)
		return false
	}
	s.placed[b.ID] = b.Status
	return b.Status == bids.StatusAccepted && (!known || prev != bids.StatusAccepted)
}

func (s *Session) remember(conv conversations.Conversation) {
	s.mu.Lock()
	s.convs[conv.ID] = conv
	s.mu.Unlock()
}

// member reports whether conversationID is one the session knows the user
// belongs to.
func (s *Session) member(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.convs[conversationID]
	return ok
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)

	chans := make([]<-chan feed.Change, len(s.subs))
	for i, sub := range s.subs {
		chans[i] = sub.C()
	}

	cases := len(chans)
	for cases > 0 {
		var (
			c  feed.Change
			ok bool
			i  int
		)
		select {
		case <-ctx.Done():
			return
		case c, ok = <-chans[0]:
			i = 0
		case c, ok = <-chans[1]:
			i = 1
		case c, ok = <-chans[2]:
			i = 2
		case c, ok = <-chans[3]:
			i = 3
		}
		if !ok {
			chans[i] = nil
			cases--
			continue
		}
		s.safeHandle(c)
	}
}

// safeHandle keeps the loop alive across a failing change.
func (s *Session) safeHandle(c feed.Change) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Notification watcher recovered",
				slog.String("type", "error"),
				slog.String("session_id", s.ID),
				slog.String("collection", string(c.Collection)),
				slog.Any("panic", r))
		}
	}()
	s.handle(c)
}

func sortByCreated(list []conversations.Message) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}

func bidOf(c feed.Change) (bids.Bid, bool) {
	switch d := c.Doc.(type) {
	case bids.Bid:
		return d, true
	case *bids.Bid:
		if d != nil {
			return *d, true
		}
	}
	return bids.Bid{}, false
}

func conversationOf(c feed.Change) (conversations.Conversation, bool) {
	switch d := c.Doc.(type) {
	case conversations.Conversation:
		return d, true
	case *conversations.Conversation:
		if d != nil {
			return *d, true
		}
	}
	return conversations.Conversation{}, false
}

func messageOf(c feed.Change) (conversations.Message, bool) {
	switch d := c.Doc.(type) {
	case conversations.Message:
		return d, true
	case *conversations.Message:
		if d != nil {
			return *d, true
		}
	}
	return conversations.Message{}, false
}
