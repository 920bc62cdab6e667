package reviews

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, reviewer actor.Ref, bidID string, rating int, comment string) (*Review, error)
	ListForUser(ctx context.Context, userID string) ([]Review, error)
	Summary(ctx context.Context, userID string) (Summary, error)
}

type service struct {
	repository Repository
	bids       Bids
	now        func() time.Time
}

func NewService(repository Repository, bidReader Bids) *service {
	return &service{
		repository: repository,
		bids:       bidReader,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, reviewer actor.Ref, bidID string, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	bid, err := s.bids.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.Status != bids.StatusAccepted {
		return nil, ErrBidNotClosed
	}

	var target string
	switch reviewer.ID {
	case bid.Bidder.ID:
		target = bid.PostOwnerID
	case bid.PostOwnerID:
		target = bid.Bidder.ID
	default:
		return nil, ErrNotParty
	}

	review := &Review{
		ID:           uuid.NewString(),
		TargetUserID: target,
		Reviewer:     reviewer,
		Rating:       rating,
		Comment:      strings.TrimSpace(comment),
		BidID:        bid.ID,
		CreatedAt:    s.now(),
	}
	if err := s.repository.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]Review, error) {
	list, err := s.repository.ListByTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Summary averages ratings to one decimal place.
func (s *service) Summary(ctx context.Context, userID string) (Summary, error) {
	list, err := s.repository.ListByTarget(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if len(list) == 0 {
		return Summary{}, nil
	}

	total := 0
	for _, r := range list {
		total += r.Rating
	}
	avg := float64(total) / float64(len(list))
	return Summary{Count: len(list), Average: math.Round(avg*10) / 10}, nil
}
