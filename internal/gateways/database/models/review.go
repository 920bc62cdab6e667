package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/uptrace/bun"
)

type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID             string    `bun:"id,pk,type:text"`
	TargetUserID   string    `bun:"target_user_id,notnull"`
	ReviewerID     string    `bun:"reviewer_id,notnull"`
	ReviewerName   string    `bun:"reviewer_name"`
	ReviewerAvatar string    `bun:"reviewer_avatar"`
	Rating         int       `bun:"rating,notnull"`
	Comment        string    `bun:"comment"`
	BidID          string    `bun:"bid_id,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func NewReview(r *reviews.Review) *Review {
	return &Review{
		ID:             r.ID,
		TargetUserID:   r.TargetUserID,
		ReviewerID:     r.Reviewer.ID,
		ReviewerName:   r.Reviewer.Name,
		ReviewerAvatar: r.Reviewer.Avatar,
		Rating:         r.Rating,
		Comment:        r.Comment,
		BidID:          r.BidID,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *Review) Domain() reviews.Review {
	return reviews.Review{
		ID:           m.ID,
		TargetUserID: m.TargetUserID,
		Reviewer:     actor.Ref{ID: m.ReviewerID, Name: m.ReviewerName, Avatar: m.ReviewerAvatar},
		Rating:       m.Rating,
		Comment:      m.Comment,
		BidID:        m.BidID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
