package listings

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, owner actor.Ref, in Input) (*Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, by actor.Actor, id string, patch Patch) (*Post, error)
	Close(ctx context.Context, by actor.Actor, id string) (*Post, error)
	Reopen(ctx context.Context, by actor.Actor, id string) (*Post, error)
	SetFeatured(ctx context.Context, by actor.Actor, id string, featured bool) (*Post, error)
	ListOpen(ctx context.Context, filter Filter) ([]Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Post, error)
}

type service struct {
	repository Repository
	now        func() time.Time
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, owner actor.Ref, in Input) (*Post, error) {
	now := s.now()
	post := &Post{
		ID:              uuid.NewString(),
		Type:            in.Type,
		Origin:          strings.TrimSpace(in.Origin),
		Destination:     strings.TrimSpace(in.Destination),
		DepartureDate:   in.DepartureDate,
		ArrivalDate:     in.ArrivalDate,
		Owner:           owner,
		Status:          StatusOpen,
		OfferPrice:      in.OfferPrice,
		ItemName:        strings.TrimSpace(in.ItemName),
		ItemWeight:      in.ItemWeight,
		ItemDescription: strings.TrimSpace(in.ItemDescription),
		ItemImage:       in.ItemImage,
		TransportMode:   in.TransportMode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if post.Type == TypeTravel {
		post.ItemName, post.ItemWeight, post.ItemDescription, post.ItemImage = "", 0, "", ""
	}
	if err := validate(post); err != nil {
		return nil, err
	}

	if err := s.repository.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("Post created",
		slog.String("type", "sys"),
		slog.String("post_id", post.ID),
		slog.String("owner_id", owner.ID),
		slog.String("post_type", string(post.Type)))
	return post, nil
}

func (s *service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repository.Get(ctx, id)
}

func (s *service) Update(ctx context.Context, by actor.Actor, id string, patch Patch) (*Post, error) {
	return s.mutate(ctx, by, id, func(p *Post) error {
		applyPatch(p, patch)
		return validate(p)
	})
}

func (s *service) Close(ctx context.Context, by actor.Actor, id string) (*Post, error) {
	return s.mutate(ctx, by, id, func(p *Post) error {
		p.Status = StatusClosed
		return nil
	})
}

func (s *service) Reopen(ctx context.Context, by actor.Actor, id string) (*Post, error) {
	return s.mutate(ctx, by, id, func(p *Post) error {
		p.Status = StatusOpen
		return nil
	})
}

func (s *service) SetFeatured(ctx context.Context, by actor.Actor, id string, featured bool) (*Post, error) {
	if !by.Admin {
		return nil, ErrNotAdmin
	}
	return s.mutate(ctx, by, id, func(p *Post) error {
		p.Featured = featured
		return nil
	})
}

func (s *service) mutate(ctx context.Context, by actor.Actor, id string, fn func(*Post) error) (*Post, error) {
	post, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !by.Owns(post.Owner.ID) {
		return nil, ErrNotOwner
	}
	if err := fn(post); err != nil {
		return nil, err
	}

	post.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// ListOpen returns open posts, featured first and newest first within each group.
func (s *service) ListOpen(ctx context.Context, filter Filter) ([]Post, error) {
	filter.Status = StatusOpen
	posts, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Featured != posts[j].Featured {
			return posts[i].Featured
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]Post, error) {
	posts, err := s.repository.List(ctx, Filter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func applyPatch(p *Post, patch Patch) {
	if patch.Origin != nil {
		p.Origin = strings.TrimSpace(*patch.Origin)
	}
	if patch.Destination != nil {
		p.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.DepartureDate != nil {
		p.DepartureDate = *patch.DepartureDate
	}
	if patch.ArrivalDate != nil {
		p.ArrivalDate = patch.ArrivalDate
	}
	if patch.OfferPrice != nil {
		p.OfferPrice = patch.OfferPrice
	}
	if patch.ItemName != nil {
		p.ItemName = strings.TrimSpace(*patch.ItemName)
	}
	if patch.ItemWeight != nil {
		p.ItemWeight = *patch.ItemWeight
	}
	if patch.ItemDescription != nil {
		p.ItemDescription = strings.TrimSpace(*patch.ItemDescription)
	}
	if patch.ItemImage != nil {
		p.ItemImage = *patch.ItemImage
	}
	if patch.TransportMode != nil {
		p.TransportMode = *patch.TransportMode
	}
}
