package moderation

import (
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/carrybid/carrybid/internal/domain/listings"
)

var (
	ErrNotAdmin        = fmt.Errorf("%w: admin only", fault.ErrForbidden)
	ErrArchiveNotFound = fmt.Errorf("archive entry %w", fault.ErrNotFound)
	ErrNotRestorable   = fmt.Errorf("%w: archive entry is not restorable", fault.ErrInvalidState)
	ErrReasonRequired  = fault.Validation("reason", "a reason is required")
	ErrPostExists      = fmt.Errorf("%w: post already exists", fault.ErrConflict)
)

// Archive is the snapshot of a soft-deleted post and every bid it had.
type Archive struct {
	ID         string        `json:"id"`
	PostID     string        `json:"post_id"`
	Post       listings.Post `json:"post"`
	Bids       []bids.Bid    `json:"bids"`
	DeletedBy  actor.Ref     `json:"deleted_by"`
	Reason     string        `json:"reason"`
	DeletedAt  time.Time     `json:"deleted_at"`
	Restorable bool          `json:"restorable"`
}
