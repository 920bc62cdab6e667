// Package acceptance turns a bid acceptance into a conversation between the
// poster and the bidder plus a notification to the bidder.
package acceptance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/notifications"
)

const DefaultSeed = "Bid accepted, say hello!"

//go:generate mockgen -source=acceptance.go -destination=mock/acceptance.go -package=mock

type Bids interface {
	Get(ctx context.Context, bidID string) (*bids.Bid, error)
	Accept(ctx context.Context, by actor.Actor, bidID string) (*bids.Bid, error)
}

type Conversations interface {
	GetOrCreate(ctx context.Context, a, b actor.Ref, seed string) (*conversations.Conversation, bool, error)
}

type Notifier interface {
	Emit(userID string, n notifications.Notification)
}

type Result struct {
	Bid                 *bids.Bid `json:"bid"`
	ConversationID      string    `json:"conversation_id"`
	ConversationCreated bool      `json:"conversation_created"`
}

type Service struct {
	bids          Bids
	conversations Conversations
	notifier      Notifier
	seed          string
}

func NewService(bidService Bids, conversationService Conversations, notifier Notifier, seed string) *Service {
	if seed == "" {
		seed = DefaultSeed
	}
	return &Service{
		bids:          bidService,
		conversations: conversationService,
		notifier:      notifier,
		seed:          seed,
	}
}

// Accept accepts a pending bid, or continues from an already accepted one so
// a crash between the status write and the conversation write can be
// repaired by calling it again. The two writes are not atomic.
func (s *Service) Accept(ctx context.Context, by actor.Actor, bidID string) (*Result, error) {
	bid, err := s.bids.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}

	switch bid.Status {
	case bids.StatusPending:
		if bid, err = s.bids.Accept(ctx, by, bidID); err != nil {
			return nil, err
		}
	case bids.StatusAccepted:
		if bid.PostOwnerID != by.ID {
			return nil, bids.ErrNotPostOwner
		}
	default:
		return nil, bids.ErrInvalidState
	}

	poster := by.Ref()
	conv, created, err := s.conversations.GetOrCreate(ctx, poster, bid.Bidder, s.seed)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation for bid %s: %w", bid.ID, err)
	}

	if s.notifier != nil {
		s.notifier.Emit(bid.Bidder.ID, notifications.BidAccepted(*bid, conv.ID))
	}

	slog.Info("Bid accepted",
		slog.String("type", "sys"),
		slog.String("bid_id", bid.ID),
		slog.String("post_id", bid.PostID),
		slog.String("conversation_id", conv.ID),
		slog.Bool("conversation_created", created))

	return &Result{Bid: bid, ConversationID: conv.ID, ConversationCreated: created}, nil
}
