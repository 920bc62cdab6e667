package bids

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/google/uuid"
)

type Service interface {
	PlaceOrUpdate(ctx context.Context, postID string, bidder actor.Ref, amount int64, message string) (*Bid, error)
	Accept(ctx context.Context, by actor.Actor, bidID string) (*Bid, error)
	Reject(ctx context.Context, by actor.Actor, bidID string) (*Bid, error)
	Delete(ctx context.Context, by actor.Actor, bidID string) error
	Get(ctx context.Context, bidID string) (*Bid, error)
	ListForPost(ctx context.Context, postID string) ([]Bid, error)
	ListByBidder(ctx context.Context, bidderID string) ([]Bid, error)
	ListReceived(ctx context.Context, ownerID string) ([]Bid, error)
	CountForPost(ctx context.Context, postID string) (int, error)
}

type Option func(*service)

// WithSelfBid controls whether a poster may bid on their own post.
func WithSelfBid(allow bool) Option {
	return func(s *service) { s.allowSelfBid = allow }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repository   Repository
	posts        Posts
	trail        audit.Trail
	allowSelfBid bool
	now          func() time.Time
}

func NewService(repository Repository, posts Posts, trail audit.Trail, opts ...Option) *service {
	s := &service{
		repository:   repository,
		posts:        posts,
		trail:        trail,
		allowSelfBid: true,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrUpdate creates a pending bid, or updates the bidder's active bid on
// the post in place. A rejected bid is never reused.
func (s *service) PlaceOrUpdate(ctx context.Context, postID string, bidder actor.Ref, amount int64, message string) (*Bid, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOpen() {
		return nil, ErrPostClosed
	}
	if !s.allowSelfBid && post.Owner.ID == bidder.ID {
		return nil, ErrSelfBid
	}

	message = strings.TrimSpace(message)
	now := s.now()

	existing, err := s.repository.FindActive(ctx, postID, bidder.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up existing bid: %w", err)
	}

	if existing != nil && existing.Active() {
		existing.Amount = amount
		existing.Message = message
		existing.Bidder = bidder
		existing.UpdatedAt = now
		if err := s.repository.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update bid: %w", err)
		}
		slog.Info("Bid updated",
			slog.String("type", "sys"),
			slog.String("bid_id", existing.ID),
			slog.String("post_id", postID),
			slog.Int64("amount", amount))
		return existing, nil
	}

	bid := &Bid{
		ID:          uuid.NewString(),
		PostID:      postID,
		PostOwnerID: post.Owner.ID,
		Bidder:      bidder,
		Amount:      amount,
		Message:     message,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repository.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}

	slog.Info("Bid placed",
		slog.String("type", "sys"),
		slog.String("bid_id", bid.ID),
		slog.String("post_id", postID),
		slog.String("bidder_id", bidder.ID),
		slog.Int64("amount", amount))
	return bid, nil
}

func (s *service) Accept(ctx context.Context, by actor.Actor, bidID string) (*Bid, error) {
	return s.transition(ctx, by, bidID, StatusAccepted, audit.ActionBidAccepted)
}

func (s *service) Reject(ctx context.Context, by actor.Actor, bidID string) (*Bid, error) {
	return s.transition(ctx, by, bidID, StatusRejected, audit.ActionBidRejected)
}

func (s *service) transition(ctx context.Context, by actor.Actor, bidID string, to Status, action string) (*Bid, error) {
	bid, err := s.repository.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.PostOwnerID != by.ID {
		return nil, ErrNotPostOwner
	}
	if bid.Status != StatusPending {
		return nil, ErrInvalidState
	}

	bid.Status = to
	bid.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to update bid status: %w", err)
	}

	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     action,
		TargetType: "bid",
		TargetID:   bid.ID,
		OldStatus:  string(StatusPending),
		NewStatus:  string(to),
	})
	return bid, nil
}

func (s *service) Delete(ctx context.Context, by actor.Actor, bidID string) error {
	if !by.Admin {
		return ErrNotAdmin
	}

	bid, err := s.repository.Get(ctx, bidID)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, bidID); err != nil {
		return fmt.Errorf("failed to delete bid: %w", err)
	}

	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     audit.ActionBidDeleted,
		TargetType: "bid",
		TargetID:   bidID,
		OldStatus:  string(bid.Status),
	})
	return nil
}

func (s *service) Get(ctx context.Context, bidID string) (*Bid, error) {
	return s.repository.Get(ctx, bidID)
}

func (s *service) ListForPost(ctx context.Context, postID string) ([]Bid, error) {
	return s.repository.ListByPost(ctx, postID)
}

func (s *service) ListByBidder(ctx context.Context, bidderID string) ([]Bid, error) {
	return s.repository.ListByBidder(ctx, bidderID)
}

func (s *service) ListReceived(ctx context.Context, ownerID string) ([]Bid, error) {
	return s.repository.ListByPostOwner(ctx, ownerID)
}

func (s *service) CountForPost(ctx context.Context, postID string) (int, error) {
	return s.repository.CountByPost(ctx, postID)
}
