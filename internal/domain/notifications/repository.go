package notifications

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// BidReader loads the bids a watcher starts from.
type BidReader interface {
	ListByBidder(ctx context.Context, bidderID string) ([]bids.Bid, error)
	ListByPostOwner(ctx context.Context, ownerID string) ([]bids.Bid, error)
}

// ConversationReader loads the conversations and messages a watcher starts from.
type ConversationReader interface {
	ListByParticipant(ctx context.Context, userID string) ([]conversations.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]conversations.Message, error)
}
