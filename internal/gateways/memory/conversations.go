package memory

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/feed"
)

type Conversations struct{ s *Store }

var _ conversations.Repository = (*Conversations)(nil)

func (r *Conversations) Create(_ context.Context, conv *conversations.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.conversations {
		if c.Participants == conv.Participants {
			return conversations.ErrConversationExists
		}
	}
	r.s.conversations[conv.ID] = *conv
	r.s.publish(feed.Conversations, feed.KindAdded, conv.ID, *conv)
	return nil
}

func (r *Conversations) Get(_ context.Context, id string) (*conversations.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.conversations[id]
	if !ok {
		return nil, conversations.ErrNotFound
	}
	return &c, nil
}

func (r *Conversations) ListByParticipant(_ context.Context, userID string) ([]conversations.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]conversations.Conversation, 0)
	for _, c := range r.s.conversations {
		if c.Has(userID) {
			out = append(out, c)
		}
	}
	sortNewest(out, func(c conversations.Conversation) int64 { return c.UpdatedAt.UnixNano() })
	return out, nil
}

func (r *Conversations) AppendMessage(_ context.Context, m *conversations.Message, preview string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.conversations[m.ConversationID]
	if !ok {
		return conversations.ErrNotFound
	}
	r.s.messages[c.ID] = append(r.s.messages[c.ID], *m)
	c.LastMessage = preview
	c.UpdatedAt = m.CreatedAt
	r.s.conversations[c.ID] = c

	r.s.publish(feed.Messages, feed.KindAdded, m.ID, *m)
	r.s.publish(feed.Conversations, feed.KindModified, c.ID, c)
	return nil
}

func (r *Conversations) Messages(_ context.Context, conversationID string) ([]conversations.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.conversations[conversationID]; !ok {
		return nil, conversations.ErrNotFound
	}
	out := append([]conversations.Message(nil), r.s.messages[conversationID]...)
	sortOldest(out, func(m conversations.Message) int64 { return m.CreatedAt.UnixNano() })
	return out, nil
}
