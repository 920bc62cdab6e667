package listings

import (
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/fault"
)

type Type string

const (
	TypeItem   Type = "item"
	TypeTravel Type = "travel"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type TransportMode string

const (
	TransportFlight TransportMode = "flight"
	TransportTrain  TransportMode = "train"
	TransportBus    TransportMode = "bus"
	TransportCar    TransportMode = "car"
	TransportOther  TransportMode = "other"
)

var transportModes = map[TransportMode]bool{
	TransportFlight: true,
	TransportTrain:  true,
	TransportBus:    true,
	TransportCar:    true,
	TransportOther:  true,
}

var (
	ErrNotFound = fmt.Errorf("post %w", fault.ErrNotFound)
	ErrNotOwner = fmt.Errorf("%w: only the post owner may change this post", fault.ErrForbidden)
	ErrNotAdmin = fmt.Errorf("%w: admin only", fault.ErrForbidden)
)

// Post is a listing: either an item to be carried or a travel offer.
type Post struct {
	ID              string        `json:"id"`
	Type            Type          `json:"type"`
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	DepartureDate   time.Time     `json:"departure_date"`
	ArrivalDate     *time.Time    `json:"arrival_date,omitempty"`
	Owner           actor.Ref     `json:"owner"`
	Status          Status        `json:"status"`
	OfferPrice      *int64        `json:"offer_price,omitempty"`
	ItemName        string        `json:"item_name,omitempty"`
	ItemWeight      float64       `json:"item_weight,omitempty"`
	ItemDescription string        `json:"item_description,omitempty"`
	ItemImage       string        `json:"item_image,omitempty"`
	TransportMode   TransportMode `json:"transport_mode,omitempty"`
	Featured        bool          `json:"featured"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (p Post) IsOpen() bool {
	return p.Status == StatusOpen
}

// Input carries the fields a user supplies when creating a post.
type Input struct {
	Type            Type          `json:"type"`
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	DepartureDate   time.Time     `json:"departure_date"`
	ArrivalDate     *time.Time    `json:"arrival_date,omitempty"`
	OfferPrice      *int64        `json:"offer_price,omitempty"`
	ItemName        string        `json:"item_name,omitempty"`
	ItemWeight      float64       `json:"item_weight,omitempty"`
	ItemDescription string        `json:"item_description,omitempty"`
	ItemImage       string        `json:"item_image,omitempty"`
	TransportMode   TransportMode `json:"transport_mode,omitempty"`
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Origin          *string        `json:"origin,omitempty"`
	Destination     *string        `json:"destination,omitempty"`
	DepartureDate   *time.Time     `json:"departure_date,omitempty"`
	ArrivalDate     *time.Time     `json:"arrival_date,omitempty"`
	OfferPrice      *int64         `json:"offer_price,omitempty"`
	ItemName        *string        `json:"item_name,omitempty"`
	ItemWeight      *float64       `json:"item_weight,omitempty"`
	ItemDescription *string        `json:"item_description,omitempty"`
	ItemImage       *string        `json:"item_image,omitempty"`
	TransportMode   *TransportMode `json:"transport_mode,omitempty"`
}

type Filter struct {
	Type        Type
	Origin      string
	Destination string
	OwnerID     string
	Status      Status
	Limit       int
}

func validate(p *Post) error {
	switch p.Type {
	case TypeItem, TypeTravel:
	case "":
		return fault.Validation("type", "is required")
	default:
		return fault.Validation("type", "must be item or travel")
	}
	if p.Origin == "" {
		return fault.Validation("origin", "is required")
	}
	if p.Destination == "" {
		return fault.Validation("destination", "is required")
	}
	if p.DepartureDate.IsZero() {
		return fault.Validation("departure_date", "is required")
	}
	if p.ArrivalDate != nil && p.ArrivalDate.Before(p.DepartureDate) {
		return fault.Validation("arrival_date", "must not be before the departure date")
	}
	if p.OfferPrice != nil && *p.OfferPrice <= 0 {
		return fault.Validation("offer_price", "must be positive")
	}

	if p.Type == TypeItem {
		if p.ItemName == "" {
			return fault.Validation("item_name", "is required for item posts")
		}
		if p.ItemWeight <= 0 {
			return fault.Validation("item_weight", "must be positive")
		}
		return nil
	}

	if p.TransportMode == "" {
		return fault.Validation("transport_mode", "is required for travel posts")
	}
	if !transportModes[p.TransportMode] {
		return fault.Validation("transport_mode", "must be one of flight, train, bus, car, other")
	}
	return nil
}
