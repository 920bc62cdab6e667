package repositories

import (
	"context"
	"errors"

	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type conversationRepository struct {
	db *bun.DB
}

var _ conversations.Repository = &conversationRepository{}

func NewConversationRepository(db *bun.DB) *conversationRepository {
	return &conversationRepository{db: db}
}

// Create relies on the unique pair index to refuse a second thread.
func (r *conversationRepository) Create(ctx context.Context, conv *conversations.Conversation) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(models.NewConversation(conv)).Exec(ctx); err != nil {
			return err
		}
		return notify(ctx, tx, feed.Conversations, feed.KindAdded, conv.ID)
	})
	if isUniqueViolation(err) {
		return conversations.ErrConversationExists
	}
	return handleError("create", "conversation", conversations.ErrNotFound, err)
}

func (r *conversationRepository) Get(ctx context.Context, id string) (*conversations.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.Conversation)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, handleError("get", "conversation", conversations.ErrNotFound, err)
	}
	c := m.Domain()
	return &c, nil
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID string) ([]conversations.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.Conversation
	err := r.db.NewSelect().
		Model(&rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("participant_a = ?", userID).WhereOr("participant_b = ?", userID)
		}).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("list", "conversation", conversations.ErrNotFound, err)
	}

	out := make([]conversations.Conversation, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}

func (r *conversationRepository) AppendMessage(ctx context.Context, m *conversations.Message, preview string) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Conversation)(nil)).
			Set("last_message = ?", preview).
			Set("updated_at = ?", m.CreatedAt).
			Where("id = ?", m.ConversationID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return conversations.ErrNotFound
		}
		if _, err := tx.NewInsert().Model(models.NewMessage(m)).Exec(ctx); err != nil {
			return err
		}
		if err := notify(ctx, tx, feed.Messages, feed.KindAdded, m.ID); err != nil {
			return err
		}
		return notify(ctx, tx, feed.Conversations, feed.KindModified, m.ConversationID)
	})
	if errors.Is(err, conversations.ErrNotFound) {
		return err
	}
	return handleError("append message", "conversation", conversations.ErrNotFound, err)
}

func (r *conversationRepository) Messages(ctx context.Context, conversationID string) ([]conversations.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.Message
	err := r.db.NewSelect().
		Model(&rows).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("messages", "conversation", conversations.ErrNotFound, err)
	}

	out := make([]conversations.Message, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}

// Message loads a single message by id.
func (r *conversationRepository) Message(ctx context.Context, id string) (*conversations.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.Message)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, handleError("get", "message", conversations.ErrNotFound, err)
	}
	msg := m.Domain()
	return &msg, nil
}
