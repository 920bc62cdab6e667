package feed

import (
	"log/slog"
	"sync"
)

const defaultBuffer = 64

type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[string]*Subscription),
		buffer: buffer,
	}
}

// Subscription is a disposable handle on a live query.
type Subscription struct {
	hub   *Hub
	query Query
	ch    chan Change
	once  sync.Once
}

// Subscribe registers q. An existing subscription with the same key is
// closed first so a watcher never holds two live handles on one query.
func (h *Hub) Subscribe(q Query) *Subscription {
	sub := &Subscription{
		hub:   h,
		query: q,
		ch:    make(chan Change, h.buffer),
	}

	h.mu.Lock()
	prev, exists := h.subs[q.Key]
	h.subs[q.Key] = sub
	h.mu.Unlock()

	if exists {
		slog.Debug("Replacing live query subscription",
			slog.String("type", "sys"),
			slog.String("query", q.Key))
		prev.closeChannel()
	}
	return sub
}

// Publish fans c out to every matching subscription. Slow subscribers drop
// the change instead of blocking the writer.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for key, sub := range h.subs {
		if !sub.query.matches(c) {
			continue
		}
		select {
		case sub.ch <- c:
		default:
			slog.Warn("Live query buffer full, change dropped",
				slog.String("type", "sys"),
				slog.String("query", key),
				slog.String("collection", string(c.Collection)),
				slog.String("id", c.ID))
		}
	}
}

// Len returns the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]*Subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.closeChannel()
	}
}

func (s *Subscription) Key() string {
	return s.query.Key
}

// C delivers matching changes. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Change {
	return s.ch
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	if cur, ok := s.hub.subs[s.query.Key]; ok && cur == s {
		delete(s.hub.subs, s.query.Key)
	}
	s.hub.mu.Unlock()
	s.closeChannel()
}

func (s *Subscription) closeChannel() {
	s.once.Do(func() {
		// publishers send under the read lock; taking the write lock here
		// guarantees none is mid-send on this channel.
		s.hub.mu.Lock()
		close(s.ch)
		s.hub.mu.Unlock()
	})
}
