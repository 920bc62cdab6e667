package conversations

import (
	"fmt"
	"sort"
	"time"

	"github.com/carrybid/carrybid/internal/domain/fault"
)

const PhotoPreview = "📷 Photo"

var (
	ErrNotFound           = fmt.Errorf("conversation %w", fault.ErrNotFound)
	ErrConversationExists = fmt.Errorf("%w: conversation already exists for this pair", fault.ErrConflict)
	ErrSameParticipant    = fault.Validation("participants", "a conversation needs two different users")
	ErrEmptyMessage       = fault.Validation("text", "message needs text or an image")
	ErrNotParticipant     = fmt.Errorf("%w: not a participant in this conversation", fault.ErrForbidden)
)

// Conversation is a two-party thread. Participants are stored sorted so the
// pair (a, b) and (b, a) map to the same record.
type Conversation struct {
	ID           string            `json:"id"`
	Participants [2]string         `json:"participants"`
	Names        map[string]string `json:"names"`
	LastMessage  string            `json:"last_message"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (c Conversation) Has(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// Counterpart returns the other participant.
func (c Conversation) Counterpart(userID string) string {
	if c.Participants[0] == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// Message is append-only and ordered by CreatedAt within its conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Pair orders two participant ids.
func Pair(a, b string) [2]string {
	p := []string{a, b}
	sort.Strings(p)
	return [2]string{p[0], p[1]}
}

func preview(text, imageURL string) string {
	if text == "" && imageURL != "" {
		return PhotoPreview
	}
	return text
}
