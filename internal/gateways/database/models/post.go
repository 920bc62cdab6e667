package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/uptrace/bun"
)

type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID              string     `bun:"id,pk,type:text"`
	Type            string     `bun:"type,notnull"`
	Origin          string     `bun:"origin,notnull"`
	Destination     string     `bun:"destination,notnull"`
	DepartureDate   time.Time  `bun:"departure_date,notnull"`
	ArrivalDate     *time.Time `bun:"arrival_date"`
	OwnerID         string     `bun:"owner_id,notnull"`
	OwnerName       string     `bun:"owner_name"`
	OwnerAvatar     string     `bun:"owner_avatar"`
	Status          string     `bun:"status,notnull"`
	OfferPrice      *int64     `bun:"offer_price"`
	ItemName        string     `bun:"item_name"`
	ItemWeight      float64    `bun:"item_weight"`
	ItemDescription string     `bun:"item_description"`
	ItemImage       string     `bun:"item_image"`
	TransportMode   string     `bun:"transport_mode"`
	Featured        bool       `bun:"featured,notnull,default:false"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

func NewPost(p *listings.Post) *Post {
	return &Post{
		ID:              p.ID,
		Type:            string(p.Type),
		Origin:          p.Origin,
		Destination:     p.Destination,
		DepartureDate:   p.DepartureDate,
		ArrivalDate:     p.ArrivalDate,
		OwnerID:         p.Owner.ID,
		OwnerName:       p.Owner.Name,
		OwnerAvatar:     p.Owner.Avatar,
		Status:          string(p.Status),
		OfferPrice:      p.OfferPrice,
		ItemName:        p.ItemName,
		ItemWeight:      p.ItemWeight,
		ItemDescription: p.ItemDescription,
		ItemImage:       p.ItemImage,
		TransportMode:   string(p.TransportMode),
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *Post) Domain() listings.Post {
	return listings.Post{
		ID:              m.ID,
		Type:            listings.Type(m.Type),
		Origin:          m.Origin,
		Destination:     m.Destination,
		DepartureDate:   m.DepartureDate.UTC(),
		ArrivalDate:     utcPtr(m.ArrivalDate),
		Owner:           actor.Ref{ID: m.OwnerID, Name: m.OwnerName, Avatar: m.OwnerAvatar},
		Status:          listings.Status(m.Status),
		OfferPrice:      m.OfferPrice,
		ItemName:        m.ItemName,
		ItemWeight:      m.ItemWeight,
		ItemDescription: m.ItemDescription,
		ItemImage:       m.ItemImage,
		TransportMode:   listings.TransportMode(m.TransportMode),
		Featured:        m.Featured,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
