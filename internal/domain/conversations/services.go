package conversations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/google/uuid"
)

type Service interface {
	Find(ctx context.Context, a, b string) (*Conversation, error)
	Create(ctx context.Context, a, b actor.Ref) (*Conversation, error)
	GetOrCreate(ctx context.Context, a, b actor.Ref, seed string) (*Conversation, bool, error)
	Get(ctx context.Context, viewer actor.Actor, id string) (*Conversation, error)
	AppendMessage(ctx context.Context, conversationID, senderID, text, imageURL string) (*Message, error)
	ListForUser(ctx context.Context, userID string) ([]Conversation, error)
	Messages(ctx context.Context, viewer actor.Actor, conversationID string) ([]Message, error)
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repository Repository
	now        func() time.Time
}

func NewService(repository Repository, opts ...Option) *service {
	s := &service{
		repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find scans a's conversations for one that also contains b.
func (s *service) Find(ctx context.Context, a, b string) (*Conversation, error) {
	list, err := s.repository.ListByParticipant(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	for i := range list {
		if list[i].Has(b) {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) Create(ctx context.Context, a, b actor.Ref) (*Conversation, error) {
	return s.create(ctx, a, b, "")
}

func (s *service) create(ctx context.Context, a, b actor.Ref, seed string) (*Conversation, error) {
	if a.ID == b.ID {
		return nil, ErrSameParticipant
	}
	if _, err := s.Find(ctx, a.ID, b.ID); err == nil {
		return nil, ErrConversationExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.now()
	conv := &Conversation{
		ID:           uuid.NewString(),
		Participants: Pair(a.ID, b.ID),
		Names:        map[string]string{a.ID: a.Name, b.ID: b.Name},
		LastMessage:  seed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repository.Create(ctx, conv); err != nil {
		return nil, err
	}

	slog.Info("Conversation created",
		slog.String("type", "sys"),
		slog.String("conversation_id", conv.ID),
		slog.String("participant_a", conv.Participants[0]),
		slog.String("participant_b", conv.Participants[1]))
	return conv, nil
}

// GetOrCreate returns the pair's conversation, creating it with seed as the
// preview when none exists. The bool reports whether it was created.
func (s *service) GetOrCreate(ctx context.Context, a, b actor.Ref, seed string) (*Conversation, bool, error) {
	conv, err := s.Find(ctx, a.ID, b.ID)
	if err == nil {
		return conv, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	conv, err = s.create(ctx, a, b, seed)
	if errors.Is(err, ErrConversationExists) {
		// lost a race with a concurrent create; the store kept the other one
		conv, err = s.Find(ctx, a.ID, b.ID)
		return conv, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return conv, true, nil
}

func (s *service) Get(ctx context.Context, viewer actor.Actor, id string) (*Conversation, error) {
	conv, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Admin && !conv.Has(viewer.ID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *service) AppendMessage(ctx context.Context, conversationID, senderID, text, imageURL string) (*Message, error) {
	text = strings.TrimSpace(text)
	imageURL = strings.TrimSpace(imageURL)
	if text == "" && imageURL == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.repository.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Has(senderID) {
		return nil, ErrNotParticipant
	}

	msg := &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		ImageURL:       imageURL,
		CreatedAt:      s.now(),
	}
	if err := s.repository.AppendMessage(ctx, msg, preview(text, imageURL)); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return msg, nil
}

// ListForUser returns the user's conversations, most recently active first.
func (s *service) ListForUser(ctx context.Context, userID string) ([]Conversation, error) {
	list, err := s.repository.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	return list, nil
}

func (s *service) Messages(ctx context.Context, viewer actor.Actor, conversationID string) ([]Message, error) {
	if _, err := s.Get(ctx, viewer, conversationID); err != nil {
		return nil, err
	}

	msgs, err := s.repository.Messages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
