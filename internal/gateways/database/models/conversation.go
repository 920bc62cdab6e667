package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/uptrace/bun"
)

// Conversation stores the participant pair sorted; a unique index on
// (participant_a, participant_b) keeps one thread per pair.
type Conversation struct {
	bun.BaseModel `bun:"table:conversations,alias:cv"`

	ID           string            `bun:"id,pk,type:text"`
	ParticipantA string            `bun:"participant_a,notnull"`
	ParticipantB string            `bun:"participant_b,notnull"`
	Names        map[string]string `bun:"names,type:jsonb"`
	LastMessage  string            `bun:"last_message"`
	CreatedAt    time.Time         `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time         `bun:"updated_at,notnull,default:current_timestamp"`
}

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:msg"`

	ID             string    `bun:"id,pk,type:text"`
	ConversationID string    `bun:"conversation_id,notnull"`
	SenderID       string    `bun:"sender_id,notnull"`
	Text           string    `bun:"text"`
	ImageURL       string    `bun:"image_url"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func NewConversation(c *conversations.Conversation) *Conversation {
	return &Conversation{
		ID:           c.ID,
		ParticipantA: c.Participants[0],
		ParticipantB: c.Participants[1],
		Names:        c.Names,
		LastMessage:  c.LastMessage,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *Conversation) Domain() conversations.Conversation {
	return conversations.Conversation{
		ID:           m.ID,
		Participants: [2]string{m.ParticipantA, m.ParticipantB},
		Names:        m.Names,
		LastMessage:  m.LastMessage,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func NewMessage(msg *conversations.Message) *Message {
	return &Message{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Text:           msg.Text,
		ImageURL:       msg.ImageURL,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *Message) Domain() conversations.Message {
	return conversations.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		ImageURL:       m.ImageURL,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}
