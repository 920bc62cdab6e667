package acceptance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/carrybid/carrybid/internal/domain/acceptance"
	"github.com/carrybid/carrybid/internal/domain/acceptance/mock"
	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"go.uber.org/mock/gomock"
)

var (
	poster = actor.Actor{ID: "poster", Name: "Asha"}
	bidder = actor.Ref{ID: "bidder", Name: "Bilal"}
)

func bidWith(status bids.Status) *bids.Bid {
	return &bids.Bid{ID: "bid-1", PostID: "post-1", PostOwnerID: poster.ID, Bidder: bidder, Amount: 500, Status: status}
}

func TestService_Accept(t *testing.T) {
	tests := []struct {
		name        string
		by          actor.Actor
		status      bids.Status
		acceptErr   error
		created     bool
		wantErr     error
		wantAccept  bool
		wantConvo   bool
		wantCreated bool
	}{
		{name: "Pending opens new conversation", by: poster, status: bids.StatusPending, created: true, wantAccept: true, wantConvo: true, wantCreated: true},
		{name: "Pending reuses conversation", by: poster, status: bids.StatusPending, wantAccept: true, wantConvo: true},
		{name: "Already accepted repairs conversation", by: poster, status: bids.StatusAccepted, created: true, wantConvo: true, wantCreated: true},
		{name: "Already accepted by stranger", by: actor.Actor{ID: "x"}, status: bids.StatusAccepted, wantErr: bids.ErrNotPostOwner},
		{name: "Rejected", by: poster, status: bids.StatusRejected, wantErr: bids.ErrInvalidState},
		{name: "Accept refused", by: actor.Actor{ID: "x"}, status: bids.StatusPending, acceptErr: bids.ErrNotPostOwner, wantAccept: true, wantErr: bids.ErrNotPostOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			bidSvc := mock.NewMockBids(ctrl)
			convSvc := mock.NewMockConversations(ctrl)
			notifier := mock.NewMockNotifier(ctrl)

			bidSvc.EXPECT().Get(gomock.Any(), "bid-1").Return(bidWith(tt.status), nil)
			if tt.wantAccept {
				if tt.acceptErr != nil {
					bidSvc.EXPECT().Accept(gomock.Any(), tt.by, "bid-1").Return(nil, tt.acceptErr)
				} else {
					bidSvc.EXPECT().Accept(gomock.Any(), tt.by, "bid-1").Return(bidWith(bids.StatusAccepted), nil)
				}
			}
			if tt.wantConvo {
				convSvc.EXPECT().GetOrCreate(gomock.Any(), tt.by.Ref(), bidder, "hi").
					Return(&conversations.Conversation{ID: "conv-1"}, tt.created, nil)
				notifier.EXPECT().Emit(bidder.ID, gomock.Any()).Do(func(_ string, n notifications.Notification) {
					if n.Kind != notifications.KindBidAccepted || n.BidID != "bid-1" || n.PostID != "post-1" || n.ConversationID != "conv-1" {
						t.Errorf("Emit() notification = %+v", n)
					}
				})
			}

			s := acceptance.NewService(bidSvc, convSvc, notifier, "hi")
			got, err := s.Accept(context.Background(), tt.by, "bid-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Accept() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.ConversationID != "conv-1" || got.ConversationCreated != tt.wantCreated || got.Bid.Status != bids.StatusAccepted {
				t.Errorf("Accept() = %+v", got)
			}
		})
	}
}

func TestService_Accept_ConversationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	bidSvc := mock.NewMockBids(ctrl)
	convSvc := mock.NewMockConversations(ctrl)

	bidSvc.EXPECT().Get(gomock.Any(), "bid-1").Return(bidWith(bids.StatusAccepted), nil)
	convSvc.EXPECT().GetOrCreate(gomock.Any(), gomock.Any(), gomock.Any(), acceptance.DefaultSeed).
		Return(nil, false, errors.New("store down"))

	_, err := acceptance.NewService(bidSvc, convSvc, mock.NewMockNotifier(ctrl), "").Accept(context.Background(), poster, "bid-1")
	if err == nil {
		t.Fatal("Accept() expected error")
	}
}
