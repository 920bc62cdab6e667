// Package audit records moderation actions and bid status transitions.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	ActionBidAccepted      = "bid.accepted"
	ActionBidRejected      = "bid.rejected"
	ActionBidDeleted       = "bid.deleted"
	ActionPostArchived     = "post.archived"
	ActionPostRestored     = "post.restored"
	ActionUserBanned       = "user.banned"
	ActionUserUnbanned     = "user.unbanned"
	ActionIdentityApproved = "identity.approved"
	ActionIdentityRejected = "identity.rejected"
)

type Entry struct {
	ID         string    `json:"id" bson:"_id"`
	ActorID    string    `json:"actor_id" bson:"actor_id"`
	Action     string    `json:"action" bson:"action"`
	TargetType string    `json:"target_type" bson:"target_type"`
	TargetID   string    `json:"target_id" bson:"target_id"`
	OldStatus  string    `json:"old_status,omitempty" bson:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty" bson:"new_status,omitempty"`
	Note       string    `json:"note,omitempty" bson:"note,omitempty"`
	At         time.Time `json:"at" bson:"at"`
}

// Trail stores audit entries.
type Trail interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Write records e on t. Audit failures are logged and never fail the
// operation being audited.
func Write(ctx context.Context, t Trail, e Entry) {
	if t == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if err := t.Record(ctx, e); err != nil {
		slog.Error("Failed to record audit entry",
			slog.String("type", "error"),
			slog.String("action", e.Action),
			slog.String("target_id", e.TargetID),
			slog.Any("error", err))
	}
}

type nop struct{}

// Nop discards every entry.
func Nop() Trail {
	return nop{}
}

func (nop) Record(context.Context, Entry) error { return nil }

func (nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }
