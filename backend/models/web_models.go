package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/domain/users"
)

// UserSession is the signed cookie payload. SessionID keys the
// notification watcher of this browser session.
type UserSession struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *UserSession) Actor() actor.Actor {
	return actor.Actor{ID: s.UserID, Name: s.Name, Avatar: s.Avatar, Admin: s.IsAdmin}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BidRequest struct {
	Amount  int64  `json:"amount"`
	Message string `json:"message"`
}

type MessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

type ReviewRequest struct {
	BidID   string `json:"bid_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type FeaturedRequest struct {
	Featured bool `json:"featured"`
}

type PermissionRequest struct {
	Granted bool `json:"granted"`
}

// PostDetail is a post together with its bid count and owner profile.
type PostDetail struct {
	Post     *listings.Post `json:"post"`
	BidCount int            `json:"bid_count"`
	Owner    *PublicProfile `json:"owner,omitempty"`
	Bids     []bids.Bid     `json:"bids,omitempty"`

	// ViewerBid is the signed-in caller's active bid on the post.
	ViewerBid *bids.Bid `json:"viewer_bid,omitempty"`
}

// PublicProfile is what other users may see of a user.
type PublicProfile struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Avatar       string                   `json:"avatar,omitempty"`
	Profession   string                   `json:"profession,omitempty"`
	Education    string                   `json:"education,omitempty"`
	Hometown     string                   `json:"hometown,omitempty"`
	Bio          string                   `json:"bio,omitempty"`
	Verification users.VerificationStatus `json:"verification"`
	Rating       *reviews.Summary         `json:"rating,omitempty"`
	MemberSince  time.Time                `json:"member_since"`
}

func NewPublicProfile(u *users.User) *PublicProfile {
	return &PublicProfile{
		ID:           u.ID,
		Name:         u.Name,
		Avatar:       u.Avatar,
		Profession:   u.Profession,
		Education:    u.Education,
		Hometown:     u.Hometown,
		Bio:          u.Bio,
		Verification: u.Verification.Status,
		MemberSince:  u.CreatedAt,
	}
}
