package notifications

import (
	"errors"
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/fault"
)

type Kind string

const (
	KindBidReceived Kind = "bid_received"
	KindBidAccepted Kind = "bid_accepted"
	KindMessage     Kind = "message"
)

var (
	ErrNotFound = fmt.Errorf("notification %w", fault.ErrNotFound)
	ErrClosed   = errors.New("notification registry closed")
)

// Notification is a session-local inbox entry. It is never persisted.
type Notification struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Kind           Kind      `json:"kind"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	PostID         string    `json:"post_id,omitempty"`
	BidID          string    `json:"bid_id,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`

	// key identifies the underlying record so each one fires at most once.
	key string
}

// Pusher forwards notifications to a connected client.
type Pusher interface {
	Push(n Notification) error
}

func BidAccepted(b bids.Bid, conversationID string) Notification {
	return Notification{
		UserID:         b.Bidder.ID,
		Kind:           KindBidAccepted,
		Title:          "Bid accepted",
		Body:           fmt.Sprintf("Your bid of ₹%d was accepted", b.Amount),
		PostID:         b.PostID,
		BidID:          b.ID,
		ConversationID: conversationID,
		key:            string(KindBidAccepted) + ":" + b.ID,
	}
}

func BidReceived(b bids.Bid) Notification {
	return Notification{
		UserID: b.PostOwnerID,
		Kind:   KindBidReceived,
		Title:  "New bid on your post",
		Body:   fmt.Sprintf("%s offered ₹%d", b.Bidder.Name, b.Amount),
		PostID: b.PostID,
		BidID:  b.ID,
		key:    string(KindBidReceived) + ":" + b.ID,
	}
}

func NewMessage(userID string, conv conversations.Conversation, m conversations.Message) Notification {
	title := "New message"
	if name := conv.Names[m.SenderID]; name != "" {
		title = "New message from " + name
	}
	body := m.Text
	if body == "" {
		body = conversations.PhotoPreview
	}
	return Notification{
		UserID:         userID,
		Kind:           KindMessage,
		Title:          title,
		Body:           body,
		ConversationID: conv.ID,
		key:            string(KindMessage) + ":" + m.ID,
	}
}
