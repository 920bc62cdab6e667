package bids

import (
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/fault"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound      = fmt.Errorf("bid %w", fault.ErrNotFound)
	ErrInvalidAmount = &fault.FieldError{Field: "amount", Message: "must be a positive amount"}
	ErrPostClosed    = fmt.Errorf("%w: post is closed for bidding", fault.ErrInvalidState)
	ErrSelfBid       = fmt.Errorf("%w: cannot bid on your own post", fault.ErrForbidden)
	ErrNotPostOwner  = fmt.Errorf("%w: only the post owner may accept or reject bids", fault.ErrForbidden)
	ErrNotAdmin      = fmt.Errorf("%w: admin only", fault.ErrForbidden)
	ErrInvalidState  = fmt.Errorf("%w: bid is not pending", fault.ErrInvalidState)
	ErrActiveBid     = fmt.Errorf("%w: an active bid already exists for this post", fault.ErrConflict)
)

// Bid is an offer against a post. At most one non-rejected bid exists per
// (post, bidder) pair.
type Bid struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	PostOwnerID string    `json:"post_owner_id"`
	Bidder      actor.Ref `json:"bidder"`
	Amount      int64     `json:"amount"`
	Message     string    `json:"message,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Active reports whether the bid still counts toward the one-per-bidder rule.
func (b Bid) Active() bool {
	return b.Status != StatusRejected
}
