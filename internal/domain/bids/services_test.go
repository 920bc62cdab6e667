package bids_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/bids/mock"
	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"go.uber.org/mock/gomock"
)

var (
	poster = actor.Actor{ID: "user-a", Name: "Asha"}
	bidder = actor.Ref{ID: "user-b", Name: "Bilal"}
	now    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock  = bids.WithClock(func() time.Time { return now })
)

func openPost() *listings.Post {
	return &listings.Post{ID: "post-1", Owner: poster.Ref(), Status: listings.StatusOpen}
}

func existingBid(status bids.Status) *bids.Bid {
	return &bids.Bid{
		ID: "bid-1", PostID: "post-1", PostOwnerID: poster.ID, Bidder: bidder,
		Amount: 400, Status: status, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}
}

func Test_service_PlaceOrUpdate(t *testing.T) {
	tests := []struct {
		name       string
		existing   *bids.Bid
		wantSameID bool
		wantStatus bids.Status
	}{
		{name: "First bid", wantStatus: bids.StatusPending},
		{name: "Resubmit while pending", existing: existingBid(bids.StatusPending), wantSameID: true, wantStatus: bids.StatusPending},
		{name: "Resubmit while accepted", existing: existingBid(bids.StatusAccepted), wantSameID: true, wantStatus: bids.StatusAccepted},
		{name: "Resubmit after rejection", existing: existingBid(bids.StatusRejected), wantStatus: bids.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockRepository(ctrl)
			posts := mock.NewMockPosts(ctrl)

			posts.EXPECT().Get(gomock.Any(), "post-1").Return(openPost(), nil)
			if tt.existing != nil {
				repo.EXPECT().FindActive(gomock.Any(), "post-1", bidder.ID).Return(tt.existing, nil)
			} else {
				repo.EXPECT().FindActive(gomock.Any(), "post-1", bidder.ID).Return(nil, bids.ErrNotFound)
			}
			if tt.wantSameID {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			} else {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			s := bids.NewService(repo, posts, audit.Nop(), clock)
			got, err := s.PlaceOrUpdate(context.Background(), "post-1", bidder, 500, " can carry tomorrow ")
			if err != nil {
				t.Fatalf("PlaceOrUpdate() error = %v", err)
			}
			if sameID := got.ID == "bid-1"; sameID != tt.wantSameID {
				t.Errorf("PlaceOrUpdate() id = %s, wantSameID %v", got.ID, tt.wantSameID)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("PlaceOrUpdate() status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Amount != 500 || got.Message != "can carry tomorrow" || !got.UpdatedAt.Equal(now) {
				t.Errorf("PlaceOrUpdate() got = %+v", got)
			}
		})
	}
}

func Test_service_PlaceOrUpdate_Rejections(t *testing.T) {
	closed := openPost()
	closed.Status = listings.StatusClosed

	tests := []struct {
		name    string
		amount  int64
		post    *listings.Post
		bidder  actor.Ref
		opts    []bids.Option
		wantErr error
	}{
		{name: "Zero amount", amount: 0, bidder: bidder, wantErr: bids.ErrInvalidAmount},
		{name: "Negative amount", amount: -5, bidder: bidder, wantErr: fault.ErrValidation},
		{name: "Closed post", amount: 10, post: closed, bidder: bidder, wantErr: bids.ErrPostClosed},
		{name: "Self bid when guarded", amount: 10, post: openPost(), bidder: poster.Ref(), opts: []bids.Option{bids.WithSelfBid(false)}, wantErr: bids.ErrSelfBid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			posts := mock.NewMockPosts(ctrl)
			if tt.post != nil {
				posts.EXPECT().Get(gomock.Any(), "post-1").Return(tt.post, nil)
			}

			s := bids.NewService(mock.NewMockRepository(ctrl), posts, audit.Nop(), tt.opts...)
			_, err := s.PlaceOrUpdate(context.Background(), "post-1", tt.bidder, tt.amount, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceOrUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_service_SelfBidUnguardedByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	posts := mock.NewMockPosts(ctrl)
	posts.EXPECT().Get(gomock.Any(), "post-1").Return(openPost(), nil)
	repo.EXPECT().FindActive(gomock.Any(), "post-1", poster.ID).Return(nil, bids.ErrNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	s := bids.NewService(repo, posts, audit.Nop())
	if _, err := s.PlaceOrUpdate(context.Background(), "post-1", poster.Ref(), 10, ""); err != nil {
		t.Fatalf("PlaceOrUpdate() error = %v", err)
	}
}

func Test_service_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		status     bids.Status
		by         actor.Actor
		accept     bool
		wantErr    error
		wantStatus bids.Status
	}{
		{name: "Accept pending", status: bids.StatusPending, by: poster, accept: true, wantStatus: bids.StatusAccepted},
		{name: "Reject pending", status: bids.StatusPending, by: poster, wantStatus: bids.StatusRejected},
		{name: "Accept rejected", status: bids.StatusRejected, by: poster, accept: true, wantErr: bids.ErrInvalidState},
		{name: "Reject accepted", status: bids.StatusAccepted, by: poster, wantErr: bids.ErrInvalidState},
		{name: "Accept by stranger", status: bids.StatusPending, by: actor.Actor{ID: "user-c"}, accept: true, wantErr: bids.ErrNotPostOwner},
		{name: "Accept by admin", status: bids.StatusPending, by: actor.Actor{ID: "admin", Admin: true}, accept: true, wantErr: bids.ErrNotPostOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockRepository(ctrl)
			repo.EXPECT().Get(gomock.Any(), "bid-1").Return(existingBid(tt.status), nil)
			if tt.wantErr == nil {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			s := bids.NewService(repo, mock.NewMockPosts(ctrl), audit.Nop(), clock)
			call := s.Reject
			if tt.accept {
				call = s.Accept
			}
			got, err := call(context.Background(), tt.by, "bid-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func Test_service_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	s := bids.NewService(repo, mock.NewMockPosts(ctrl), audit.Nop())

	if err := s.Delete(context.Background(), poster, "bid-1"); !errors.Is(err, bids.ErrNotAdmin) {
		t.Fatalf("Delete() by non-admin error = %v", err)
	}

	repo.EXPECT().Get(gomock.Any(), "bid-1").Return(existingBid(bids.StatusAccepted), nil)
	repo.EXPECT().Delete(gomock.Any(), "bid-1").Return(nil)
	if err := s.Delete(context.Background(), actor.Actor{ID: "admin", Admin: true}, "bid-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
