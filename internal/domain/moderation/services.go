// Package moderation holds the admin actions: archiving and restoring posts,
// banning users and reviewing identity verification.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/google/uuid"
)

const defaultAuditLimit = 100

type Service interface {
	SoftDeletePost(ctx context.Context, by actor.Actor, postID, reason string) (*Archive, error)
	RestorePost(ctx context.Context, by actor.Actor, archiveID string) (*Archive, error)
	ListArchive(ctx context.Context, by actor.Actor) ([]Archive, error)
	GetArchive(ctx context.Context, by actor.Actor, archiveID string) (*Archive, error)
	BanUser(ctx context.Context, by actor.Actor, userID string) (*users.User, error)
	UnbanUser(ctx context.Context, by actor.Actor, userID string) (*users.User, error)
	ApproveIdentity(ctx context.Context, by actor.Actor, userID string) (*users.User, error)
	RejectIdentity(ctx context.Context, by actor.Actor, userID, reason string) (*users.User, error)
	DeleteBid(ctx context.Context, by actor.Actor, bidID string) error
	Audit(ctx context.Context, by actor.Actor, limit int) ([]audit.Entry, error)
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repository Repository
	users      Users
	bids       Bids
	trail      audit.Trail
	now        func() time.Time
}

func NewService(repository Repository, userService Users, bidService Bids, trail audit.Trail, opts ...Option) *service {
	if trail == nil {
		trail = audit.Nop()
	}
	s := &service{
		repository: repository,
		users:      userService,
		bids:       bidService,
		trail:      trail,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireAdmin(by actor.Actor) error {
	if !by.Admin {
		return ErrNotAdmin
	}
	return nil
}

func (s *service) SoftDeletePost(ctx context.Context, by actor.Actor, postID, reason string) (*Archive, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	entry, err := s.repository.Archive(ctx, postID, Archive{
		ID:         uuid.NewString(),
		PostID:     postID,
		DeletedBy:  actor.Ref{ID: by.ID, Name: by.Name},
		Reason:     reason,
		DeletedAt:  s.now(),
		Restorable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to archive post %s: %w", postID, err)
	}

	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     audit.ActionPostArchived,
		TargetType: "post",
		TargetID:   postID,
		Note:       reason,
	})
	slog.Info("Post archived",
		slog.String("type", "sys"),
		slog.String("post_id", postID),
		slog.String("archive_id", entry.ID),
		slog.Int("bids", len(entry.Bids)))
	return entry, nil
}

// RestorePost is not guarded against two concurrent restores of the same
// entry beyond what the store rejects.
func (s *service) RestorePost(ctx context.Context, by actor.Actor, archiveID string) (*Archive, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}

	entry, err := s.repository.GetArchive(ctx, archiveID)
	if err != nil {
		return nil, err
	}
	if !entry.Restorable {
		return nil, ErrNotRestorable
	}

	restored, err := s.repository.Restore(ctx, archiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to restore archive %s: %w", archiveID, err)
	}

	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     audit.ActionPostRestored,
		TargetType: "post",
		TargetID:   restored.PostID,
		Note:       archiveID,
	})
	return restored, nil
}

func (s *service) ListArchive(ctx context.Context, by actor.Actor) ([]Archive, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	return s.repository.ListArchive(ctx)
}

func (s *service) GetArchive(ctx context.Context, by actor.Actor, archiveID string) (*Archive, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	return s.repository.GetArchive(ctx, archiveID)
}

// BanUser only sets the flag; the user's posts and bids stay visible.
func (s *service) BanUser(ctx context.Context, by actor.Actor, userID string) (*users.User, error) {
	return s.setBanned(ctx, by, userID, true)
}

func (s *service) UnbanUser(ctx context.Context, by actor.Actor, userID string) (*users.User, error) {
	return s.setBanned(ctx, by, userID, false)
}

func (s *service) setBanned(ctx context.Context, by actor.Actor, userID string, banned bool) (*users.User, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	user, err := s.users.SetBanned(ctx, userID, banned)
	if err != nil {
		return nil, err
	}

	action := audit.ActionUserBanned
	if !banned {
		action = audit.ActionUserUnbanned
	}
	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     action,
		TargetType: "user",
		TargetID:   userID,
	})
	return user, nil
}

func (s *service) ApproveIdentity(ctx context.Context, by actor.Actor, userID string) (*users.User, error) {
	return s.reviewIdentity(ctx, by, userID, true, "")
}

func (s *service) RejectIdentity(ctx context.Context, by actor.Actor, userID, reason string) (*users.User, error) {
	return s.reviewIdentity(ctx, by, userID, false, reason)
}

func (s *service) reviewIdentity(ctx context.Context, by actor.Actor, userID string, approve bool, reason string) (*users.User, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	user, from, err := s.users.ReviewVerification(ctx, userID, approve, reason)
	if err != nil {
		return nil, err
	}

	action := audit.ActionIdentityApproved
	if !approve {
		action = audit.ActionIdentityRejected
	}
	audit.Write(ctx, s.trail, audit.Entry{
		ActorID:    by.ID,
		Action:     action,
		TargetType: "user",
		TargetID:   userID,
		OldStatus:  string(from),
		NewStatus:  string(user.Verification.Status),
		Note:       strings.TrimSpace(reason),
	})
	return user, nil
}

func (s *service) DeleteBid(ctx context.Context, by actor.Actor, bidID string) error {
	if err := requireAdmin(by); err != nil {
		return err
	}
	return s.bids.Delete(ctx, by, bidID)
}

func (s *service) Audit(ctx context.Context, by actor.Actor, limit int) ([]audit.Entry, error) {
	if err := requireAdmin(by); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.trail.Recent(ctx, limit)
}
