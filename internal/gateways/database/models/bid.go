package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/uptrace/bun"
)

type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b"`

	ID           string    `bun:"id,pk,type:text"`
	PostID       string    `bun:"post_id,notnull"`
	PostOwnerID  string    `bun:"post_owner_id,notnull"`
	BidderID     string    `bun:"bidder_id,notnull"`
	BidderName   string    `bun:"bidder_name"`
	BidderAvatar string    `bun:"bidder_avatar"`
	Amount       int64     `bun:"amount,notnull"`
	Message      string    `bun:"message"`
	Status       string    `bun:"status,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func NewBid(b *bids.Bid) *Bid {
	return &Bid{
		ID:           b.ID,
		PostID:       b.PostID,
		PostOwnerID:  b.PostOwnerID,
		BidderID:     b.Bidder.ID,
		BidderName:   b.Bidder.Name,
		BidderAvatar: b.Bidder.Avatar,
		Amount:       b.Amount,
		Message:      b.Message,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (m *Bid) Domain() bids.Bid {
	return bids.Bid{
		ID:          m.ID,
		PostID:      m.PostID,
		PostOwnerID: m.PostOwnerID,
		Bidder:      actor.Ref{ID: m.BidderID, Name: m.BidderName, Avatar: m.BidderAvatar},
		Amount:      m.Amount,
		Message:     m.Message,
		Status:      bids.Status(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func BidsDomain(list []Bid) []bids.Bid {
	out := make([]bids.Bid, len(list))
	for i := range list {
		out[i] = list[i].Domain()
	}
	return out
}
