package reviews

import (
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/fault"
)

var (
	ErrInvalidRating = fault.Validation("rating", "rating must be between 1 and 5")
	ErrBidNotClosed  = fmt.Errorf("%w: only accepted bids can be reviewed", fault.ErrInvalidState)
	ErrNotParty      = fmt.Errorf("%w: only the poster or the bidder may review", fault.ErrForbidden)
)

// Review is left by one party of an accepted bid about the other. More than
// one review per bid is allowed.
type Review struct {
	ID           string    `json:"id"`
	TargetUserID string    `json:"target_user_id"`
	Reviewer     actor.Ref `json:"reviewer"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	BidID        string    `json:"bid_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
