package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/uptrace/bun"
)

// DeletedPost is an archive entry. The post and its bids are kept as JSON
// so a restore reproduces every field.
type DeletedPost struct {
	bun.BaseModel `bun:"table:deleted_posts,alias:dp"`

	ID            string        `bun:"id,pk,type:text"`
	PostID        string        `bun:"post_id,notnull"`
	Post          listings.Post `bun:"post,type:jsonb"`
	Bids          []bids.Bid    `bun:"bids,type:jsonb"`
	DeletedBy     string        `bun:"deleted_by,notnull"`
	DeletedByName string        `bun:"deleted_by_name"`
	Reason        string        `bun:"reason,notnull"`
	DeletedAt     time.Time     `bun:"deleted_at,notnull"`
	Restorable    bool          `bun:"restorable,notnull,default:true"`
}

func NewDeletedPost(a *moderation.Archive) *DeletedPost {
	return &DeletedPost{
		ID:            a.ID,
		PostID:        a.PostID,
		Post:          a.Post,
		Bids:          a.Bids,
		DeletedBy:     a.DeletedBy.ID,
		DeletedByName: a.DeletedBy.Name,
		Reason:        a.Reason,
		DeletedAt:     a.DeletedAt,
		Restorable:    a.Restorable,
	}
}

func (m *DeletedPost) Domain() moderation.Archive {
	list := m.Bids
	if list == nil {
		list = []bids.Bid{}
	}
	return moderation.Archive{
		ID:         m.ID,
		PostID:     m.PostID,
		Post:       m.Post,
		Bids:       list,
		DeletedBy:  actor.Ref{ID: m.DeletedBy, Name: m.DeletedByName},
		Reason:     m.Reason,
		DeletedAt:  m.DeletedAt.UTC(),
		Restorable: m.Restorable,
	}
}
