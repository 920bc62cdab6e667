package conversations

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	// Create returns ErrConversationExists when the pair already has a thread.
	Create(ctx context.Context, conversation *Conversation) error
	Get(ctx context.Context, id string) (*Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]Conversation, error)
	// AppendMessage stores m and moves the conversation preview and
	// UpdatedAt forward in one write.
	AppendMessage(ctx context.Context, m *Message, preview string) error
	Messages(ctx context.Context, conversationID string) ([]Message, error)
}
