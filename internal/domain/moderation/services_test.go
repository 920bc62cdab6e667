package moderation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/domain/moderation/mock"
	"github.com/carrybid/carrybid/internal/domain/users"
	"go.uber.org/mock/gomock"
)

var (
	admin  = actor.Actor{ID: "admin", Name: "Root", Admin: true}
	member = actor.Actor{ID: "u1", Name: "Asha"}
	now    = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
)

type trail struct{ entries []audit.Entry }

func (t *trail) Record(_ context.Context, e audit.Entry) error {
	t.entries = append(t.entries, e)
	return nil
}

func (t *trail) Recent(_ context.Context, limit int) ([]audit.Entry, error) {
	if limit > len(t.entries) {
		limit = len(t.entries)
	}
	return t.entries[:limit], nil
}

type fixture struct {
	repo  *mock.MockRepository
	users *mock.MockUsers
	bids  *mock.MockBids
	trail *trail
	svc   moderation.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:  mock.NewMockRepository(ctrl),
		users: mock.NewMockUsers(ctrl),
		bids:  mock.NewMockBids(ctrl),
		trail: &trail{},
	}
	f.svc = moderation.NewService(f.repo, f.users, f.bids, f.trail,
		moderation.WithClock(func() time.Time { return now }))
	return f
}

func Test_service_SoftDeletePost(t *testing.T) {
	tests := []struct {
		name    string
		by      actor.Actor
		reason  string
		wantErr error
	}{
		{name: "Archives", by: admin, reason: " spam "},
		{name: "Not admin", by: member, reason: "spam", wantErr: moderation.ErrNotAdmin},
		{name: "No reason", by: admin, reason: "  ", wantErr: moderation.ErrReasonRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.wantErr == nil {
				f.repo.EXPECT().Archive(gomock.Any(), "post-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, postID string, e moderation.Archive) (*moderation.Archive, error) {
						if e.Reason != "spam" || !e.Restorable || e.DeletedBy.ID != "admin" || !e.DeletedAt.Equal(now) {
							t.Errorf("Archive() entry = %+v", e)
						}
						e.Post = listings.Post{ID: postID}
						e.Bids = []bids.Bid{{ID: "b1"}, {ID: "b2"}}
						return &e, nil
					})
			}

			got, err := f.svc.SoftDeletePost(context.Background(), tt.by, "post-1", tt.reason)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SoftDeletePost() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(f.trail.entries) != 0 {
					t.Errorf("SoftDeletePost() audited a refused action")
				}
				return
			}
			if len(got.Bids) != 2 {
				t.Errorf("SoftDeletePost() bids = %d", len(got.Bids))
			}
			if len(f.trail.entries) != 1 || f.trail.entries[0].Action != audit.ActionPostArchived {
				t.Errorf("SoftDeletePost() audit = %+v", f.trail.entries)
			}
		})
	}
}

func Test_service_RestorePost(t *testing.T) {
	tests := []struct {
		name       string
		restorable bool
		wantErr    error
	}{
		{name: "Restores", restorable: true},
		{name: "Not restorable", wantErr: moderation.ErrNotRestorable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			entry := &moderation.Archive{ID: "arc-1", PostID: "post-1", Restorable: tt.restorable}
			f.repo.EXPECT().GetArchive(gomock.Any(), "arc-1").Return(entry, nil)
			if tt.wantErr == nil {
				f.repo.EXPECT().Restore(gomock.Any(), "arc-1").Return(entry, nil)
			}

			_, err := f.svc.RestorePost(context.Background(), admin, "arc-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RestorePost() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && f.trail.entries[0].TargetID != "post-1" {
				t.Errorf("RestorePost() audit = %+v", f.trail.entries)
			}
		})
	}
}

func Test_service_Ban(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().SetBanned(gomock.Any(), "u1", true).Return(&users.User{ID: "u1", Banned: true}, nil)
	f.users.EXPECT().SetBanned(gomock.Any(), "u1", false).Return(&users.User{ID: "u1"}, nil)

	if _, err := f.svc.BanUser(context.Background(), member, "u1"); !errors.Is(err, moderation.ErrNotAdmin) {
		t.Fatalf("BanUser() by member error = %v", err)
	}
	if u, err := f.svc.BanUser(context.Background(), admin, "u1"); err != nil || !u.Banned {
		t.Fatalf("BanUser() = %+v, %v", u, err)
	}
	if u, err := f.svc.UnbanUser(context.Background(), admin, "u1"); err != nil || u.Banned {
		t.Fatalf("UnbanUser() = %+v, %v", u, err)
	}
	if f.trail.entries[0].Action != audit.ActionUserBanned || f.trail.entries[1].Action != audit.ActionUserUnbanned {
		t.Errorf("audit = %+v", f.trail.entries)
	}
}

func Test_service_ReviewIdentity(t *testing.T) {
	f := newFixture(t)
	rejected := &users.User{ID: "u1", Verification: users.Verification{Status: users.VerificationRejected}}
	f.users.EXPECT().ReviewVerification(gomock.Any(), "u1", false, "blurry").Return(rejected, users.VerificationPending, nil)
	f.users.EXPECT().ReviewVerification(gomock.Any(), "u2", true, "").Return(nil, users.VerificationUnsubmitted, users.ErrNotPending)

	if _, err := f.svc.RejectIdentity(context.Background(), admin, "u1", "blurry"); err != nil {
		t.Fatalf("RejectIdentity() error = %v", err)
	}
	if _, err := f.svc.ApproveIdentity(context.Background(), admin, "u2"); !errors.Is(err, users.ErrNotPending) {
		t.Fatalf("ApproveIdentity() error = %v", err)
	}

	if len(f.trail.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(f.trail.entries))
	}
	e := f.trail.entries[0]
	if e.Action != audit.ActionIdentityRejected || e.OldStatus != "pending" || e.NewStatus != "rejected" || e.Note != "blurry" {
		t.Errorf("audit = %+v", e)
	}
}

func Test_service_DeleteBidAndAudit(t *testing.T) {
	f := newFixture(t)
	f.bids.EXPECT().Delete(gomock.Any(), admin, "bid-1").Return(nil)

	if err := f.svc.DeleteBid(context.Background(), member, "bid-1"); !errors.Is(err, moderation.ErrNotAdmin) {
		t.Fatalf("DeleteBid() by member error = %v", err)
	}
	if err := f.svc.DeleteBid(context.Background(), admin, "bid-1"); err != nil {
		t.Fatalf("DeleteBid() error = %v", err)
	}
	if _, err := f.svc.Audit(context.Background(), member, 10); !errors.Is(err, moderation.ErrNotAdmin) {
		t.Fatalf("Audit() by member error = %v", err)
	}
}
