package notifications_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"github.com/carrybid/carrybid/internal/domain/notifications/mock"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	poster = actor.Ref{ID: "poster", Name: "Asha"}
	bidder = actor.Ref{ID: "bidder", Name: "Bilal"}
	t0     = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
)

type recorder struct {
	mu   sync.Mutex
	got  []notifications.Notification
	fail bool
}

func (r *recorder) Push(n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("client gone")
	}
	r.got = append(r.got, n)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func acceptedBid(at time.Time) bids.Bid {
	return bids.Bid{
		ID:          "bid-1",
		PostID:      "post-1",
		PostOwnerID: poster.ID,
		Bidder:      bidder,
		Amount:      500,
		Status:      bids.StatusAccepted,
		CreatedAt:   at.Add(-time.Hour),
		UpdatedAt:   at,
	}
}

func newRegistry(t *testing.T, hub *feed.Hub, start time.Time, placed []bids.Bid, convs []conversations.Conversation) *notifications.Registry {
	t.Helper()
	ctrl := gomock.NewController(t)
	bidReader := mock.NewMockBidReader(ctrl)
	convReader := mock.NewMockConversationReader(ctrl)

	bidReader.EXPECT().ListByBidder(gomock.Any(), gomock.Any()).Return(placed, nil).AnyTimes()
	bidReader.EXPECT().ListByPostOwner(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	convReader.EXPECT().ListByParticipant(gomock.Any(), gomock.Any()).Return(convs, nil).AnyTimes()
	convReader.EXPECT().Messages(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	r := notifications.NewRegistry(hub, bidReader, convReader,
		notifications.WithClock(func() time.Time { return start }))
	t.Cleanup(r.Close)
	return r
}

func eventually(t *testing.T, s *notifications.Session, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(s.List()) == n }, time.Second, 5*time.Millisecond)
}

func TestRegistry_SuppressesAcceptanceBeforeStart(t *testing.T) {
	hub := feed.NewHub(8)
	accepted := acceptedBid(t0)

	r := newRegistry(t, hub, t0.Add(time.Minute), []bids.Bid{accepted}, nil)
	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)

	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: accepted.ID, Doc: accepted})
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, s.List())
}

func TestRegistry_EmitsAcceptanceAfterStartOnce(t *testing.T) {
	hub := feed.NewHub(8)
	accepted := acceptedBid(t0)

	r := newRegistry(t, hub, t0.Add(-time.Minute), nil, nil)
	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)

	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: accepted.ID, Doc: accepted})
	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: accepted.ID, Doc: accepted})
	eventually(t, s, 1)
	time.Sleep(20 * time.Millisecond)

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, notifications.KindBidAccepted, got[0].Kind)
	assert.Equal(t, "bid-1", got[0].BidID)
	assert.Equal(t, "post-1", got[0].PostID)
	assert.False(t, got[0].Read)
}

func TestRegistry_SnapshotAfterStartFires(t *testing.T) {
	hub := feed.NewHub(8)
	r := newRegistry(t, hub, t0.Add(-time.Minute), []bids.Bid{acceptedBid(t0)}, nil)

	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)
	require.Len(t, s.List(), 1)
}

func TestRegistry_ReattachDoesNotReplay(t *testing.T) {
	hub := feed.NewHub(8)
	accepted := acceptedBid(t0)

	clock := t0.Add(-time.Minute)
	ctrl := gomock.NewController(t)
	bidReader := mock.NewMockBidReader(ctrl)
	convReader := mock.NewMockConversationReader(ctrl)
	bidReader.EXPECT().ListByBidder(gomock.Any(), bidder.ID).Return([]bids.Bid{accepted}, nil).Times(2)
	bidReader.EXPECT().ListByPostOwner(gomock.Any(), bidder.ID).Return(nil, nil).Times(2)
	convReader.EXPECT().ListByParticipant(gomock.Any(), bidder.ID).Return(nil, nil).Times(2)

	r := notifications.NewRegistry(hub, bidReader, convReader,
		notifications.WithClock(func() time.Time { return clock }))
	defer r.Close()

	first, err := r.Start(context.Background(), bidder.ID, "tab")
	require.NoError(t, err)
	require.Len(t, first.List(), 1)

	clock = t0.Add(time.Hour)
	second, err := r.Start(context.Background(), bidder.ID, "tab")
	require.NoError(t, err)
	assert.Empty(t, second.List())
	assert.Equal(t, 4, hub.Len())
}

func TestRegistry_BidReceived(t *testing.T) {
	hub := feed.NewHub(8)
	r := newRegistry(t, hub, t0, nil, nil)
	s, err := r.Start(context.Background(), poster.ID, "sess-1")
	require.NoError(t, err)

	old := bids.Bid{ID: "old", PostID: "post-1", PostOwnerID: poster.ID, Bidder: bidder, Amount: 100, Status: bids.StatusPending, CreatedAt: t0.Add(-time.Second)}
	fresh := old
	fresh.ID, fresh.CreatedAt = "fresh", t0.Add(time.Second)
	updated := fresh
	updated.Amount = 300

	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindAdded, ID: old.ID, Doc: old})
	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindAdded, ID: fresh.ID, Doc: &fresh})
	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: fresh.ID, Doc: updated})
	eventually(t, s, 1)

	got := s.List()[0]
	assert.Equal(t, notifications.KindBidReceived, got.Kind)
	assert.Equal(t, "fresh", got.BidID)
	assert.Equal(t, poster.ID, got.UserID)
}

func TestRegistry_MessagesFromCounterparty(t *testing.T) {
	hub := feed.NewHub(8)
	conv := conversations.Conversation{
		ID:           "conv-1",
		Participants: conversations.Pair(poster.ID, bidder.ID),
		Names:        map[string]string{poster.ID: poster.Name, bidder.ID: bidder.Name},
	}
	r := newRegistry(t, hub, t0, nil, []conversations.Conversation{conv})
	s, err := r.Start(context.Background(), poster.ID, "sess-1")
	require.NoError(t, err)

	own := conversations.Message{ID: "m1", ConversationID: "conv-1", SenderID: poster.ID, Text: "hi", CreatedAt: t0.Add(time.Second)}
	other := conversations.Message{ID: "m2", ConversationID: "conv-1", SenderID: bidder.ID, ImageURL: "https://cdn/x.jpg", CreatedAt: t0.Add(2 * time.Second)}
	stranger := conversations.Message{ID: "m3", ConversationID: "conv-9", SenderID: "someone", Text: "yo", CreatedAt: t0.Add(3 * time.Second)}

	for _, m := range []conversations.Message{own, other, stranger} {
		hub.Publish(feed.Change{Collection: feed.Messages, Kind: feed.KindAdded, ID: m.ID, Doc: m})
	}
	eventually(t, s, 1)
	time.Sleep(20 * time.Millisecond)

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "New message from Bilal", got[0].Title)
	assert.Equal(t, conversations.PhotoPreview, got[0].Body)
	assert.Equal(t, "conv-1", got[0].ConversationID)
}

func TestRegistry_EmitMergesWithLiveFeed(t *testing.T) {
	hub := feed.NewHub(8)
	accepted := acceptedBid(t0)
	r := newRegistry(t, hub, t0.Add(-time.Minute), nil, nil)
	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)

	hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: accepted.ID, Doc: accepted})
	eventually(t, s, 1)
	r.Emit(bidder.ID, notifications.BidAccepted(accepted, "conv-1"))

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "conv-1", got[0].ConversationID)
}

func TestSession_PushRequiresPermission(t *testing.T) {
	hub := feed.NewHub(8)
	r := newRegistry(t, hub, t0, nil, nil)
	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)

	pusher := &recorder{}
	s.Attach(pusher)

	first := acceptedBid(t0)
	r.Emit(bidder.ID, notifications.BidAccepted(first, "conv-1"))
	assert.Equal(t, 0, pusher.count())

	s.SetPermission(true)
	second := acceptedBid(t0)
	second.ID = "bid-2"
	r.Emit(bidder.ID, notifications.BidAccepted(second, "conv-1"))
	assert.Equal(t, 1, pusher.count())

	pusher.fail = true
	third := acceptedBid(t0)
	third.ID = "bid-3"
	r.Emit(bidder.ID, notifications.BidAccepted(third, "conv-1"))
	assert.Len(t, s.List(), 3)

	s.Detach(pusher)
	pusher.fail = false
	fourth := acceptedBid(t0)
	fourth.ID = "bid-4"
	r.Emit(bidder.ID, notifications.BidAccepted(fourth, "conv-1"))
	assert.Equal(t, 1, pusher.count())
}

func TestSession_ReadState(t *testing.T) {
	hub := feed.NewHub(8)
	r := newRegistry(t, hub, t0, nil, nil)
	s, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		b := acceptedBid(t0)
		b.ID = id
		r.Emit(bidder.ID, notifications.BidAccepted(b, ""))
	}
	require.Equal(t, 3, s.UnreadCount())

	list := s.List()
	assert.Equal(t, "c", list[0].BidID)
	require.NoError(t, s.MarkRead(list[0].ID))
	assert.Equal(t, 2, s.UnreadCount())
	assert.ErrorIs(t, s.MarkRead("missing"), notifications.ErrNotFound)

	s.MarkAllRead()
	assert.Zero(t, s.UnreadCount())
}

func TestRegistry_StopAndClose(t *testing.T) {
	hub := feed.NewHub(8)
	r := newRegistry(t, hub, t0, nil, nil)

	_, err := r.Start(context.Background(), bidder.ID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 4, hub.Len())

	r.Stop("sess-1")
	_, ok := r.Session("sess-1")
	assert.False(t, ok)
	assert.Zero(t, hub.Len())

	r.Close()
	_, err = r.Start(context.Background(), bidder.ID, "sess-2")
	assert.ErrorIs(t, err, notifications.ErrClosed)
}

func TestRegistry_AcceptanceFiresOnTransitionOnly(t *testing.T) {
	pending := acceptedBid(t0)
	pending.Status = bids.StatusPending
	pending.UpdatedAt = t0.Add(-time.Hour)

	edited := acceptedBid(t0)
	edited.Amount = 600
	edited.UpdatedAt = t0.Add(2 * time.Hour)

	tests := []struct {
		name    string
		start   time.Time
		placed  []bids.Bid
		changes []bids.Bid
		want    int
	}{
		{
			name:    "edit of a bid accepted before start",
			start:   t0.Add(time.Hour),
			placed:  []bids.Bid{acceptedBid(t0)},
			changes: []bids.Bid{edited},
			want:    0,
		},
		{
			name:    "accepted after start then edited",
			start:   t0.Add(-time.Minute),
			placed:  []bids.Bid{pending},
			changes: []bids.Bid{acceptedBid(t0), edited},
			want:    1,
		},
		{
			name:    "pending bid edited",
			start:   t0.Add(-2 * time.Hour),
			placed:  []bids.Bid{pending},
			changes: []bids.Bid{pending},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := feed.NewHub(8)
			r := newRegistry(t, hub, tt.start, tt.placed, nil)
			s, err := r.Start(context.Background(), bidder.ID, "sess-1")
			require.NoError(t, err)

			for _, b := range tt.changes {
				hub.Publish(feed.Change{Collection: feed.Bids, Kind: feed.KindModified, ID: b.ID, Doc: b})
			}
			if tt.want > 0 {
				eventually(t, s, tt.want)
			}
			time.Sleep(20 * time.Millisecond)
			assert.Len(t, s.List(), tt.want)
		})
	}
}

func TestRegistry_ForeignMessagesDoNotReload(t *testing.T) {
	hub := feed.NewHub(64)
	mine := conversations.Conversation{
		ID:           "conv-1",
		Participants: conversations.Pair(poster.ID, bidder.ID),
		Names:        map[string]string{poster.ID: poster.Name, bidder.ID: bidder.Name},
	}

	ctrl := gomock.NewController(t)
	bidReader := mock.NewMockBidReader(ctrl)
	convReader := mock.NewMockConversationReader(ctrl)
	bidReader.EXPECT().ListByBidder(gomock.Any(), poster.ID).Return(nil, nil).Times(1)
	bidReader.EXPECT().ListByPostOwner(gomock.Any(), poster.ID).Return(nil, nil).Times(1)
	convReader.EXPECT().ListByParticipant(gomock.Any(), poster.ID).Return([]conversations.Conversation{mine}, nil).Times(1)
	convReader.EXPECT().Messages(gomock.Any(), "conv-1").Return(nil, nil).Times(1)

	r := notifications.NewRegistry(hub, bidReader, convReader,
		notifications.WithClock(func() time.Time { return t0 }))
	t.Cleanup(r.Close)

	s, err := r.Start(context.Background(), poster.ID, "sess-1")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		m := conversations.Message{ID: fmt.Sprintf("foreign-%d", i), ConversationID: "conv-9", SenderID: "stranger", Text: "hi", CreatedAt: t0.Add(time.Second)}
		hub.Publish(feed.Change{Collection: feed.Messages, Kind: feed.KindAdded, ID: m.ID, Doc: m})
	}

	// a conversation created after start is known before its first message
	fresh := conversations.Conversation{
		ID:           "conv-2",
		Participants: conversations.Pair(poster.ID, "carol"),
		Names:        map[string]string{poster.ID: poster.Name, "carol": "Carol"},
	}
	hub.Publish(feed.Change{Collection: feed.Conversations, Kind: feed.KindAdded, ID: fresh.ID, Doc: fresh})
	for _, m := range []conversations.Message{
		{ID: "m1", ConversationID: "conv-1", SenderID: bidder.ID, Text: "on my way", CreatedAt: t0.Add(time.Second)},
		{ID: "m2", ConversationID: "conv-2", SenderID: "carol", Text: "hello", CreatedAt: t0.Add(2 * time.Second)},
	} {
		hub.Publish(feed.Change{Collection: feed.Messages, Kind: feed.KindAdded, ID: m.ID, Doc: m})
	}

	eventually(t, s, 2)
	time.Sleep(20 * time.Millisecond)
	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "conv-2", got[0].ConversationID)
	assert.Equal(t, "conv-1", got[1].ConversationID)
}

func TestRegistry_EnsureStartsOnce(t *testing.T) {
	hub := feed.NewHub(8)
	ctrl := gomock.NewController(t)
	bidReader := mock.NewMockBidReader(ctrl)
	convReader := mock.NewMockConversationReader(ctrl)
	bidReader.EXPECT().ListByBidder(gomock.Any(), bidder.ID).
		DoAndReturn(func(context.Context, string) ([]bids.Bid, error) {
			time.Sleep(10 * time.Millisecond)
			return nil, nil
		}).Times(1)
	bidReader.EXPECT().ListByPostOwner(gomock.Any(), bidder.ID).Return(nil, nil).Times(1)
	convReader.EXPECT().ListByParticipant(gomock.Any(), bidder.ID).Return(nil, nil).Times(1)

	r := notifications.NewRegistry(hub, bidReader, convReader,
		notifications.WithClock(func() time.Time { return t0 }))
	t.Cleanup(r.Close)

	const callers = 16
	got := make([]*notifications.Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Ensure(context.Background(), bidder.ID, "tab")
			assert.NoError(t, err)
			got[i] = s
		}()
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	current, ok := r.Session("tab")
	require.True(t, ok)
	assert.Same(t, got[0], current)
	assert.Equal(t, 4, hub.Len())
}

func TestRegistry_ReapIdle(t *testing.T) {
	hub := feed.NewHub(8)
	var mu sync.Mutex
	clock := t0
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}
	advance := func(to time.Time) {
		mu.Lock()
		clock = to
		mu.Unlock()
	}

	ctrl := gomock.NewController(t)
	bidReader := mock.NewMockBidReader(ctrl)
	convReader := mock.NewMockConversationReader(ctrl)
	bidReader.EXPECT().ListByBidder(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	bidReader.EXPECT().ListByPostOwner(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	convReader.EXPECT().ListByParticipant(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	r := notifications.NewRegistry(hub, bidReader, convReader, notifications.WithClock(now))
	t.Cleanup(r.Close)

	ctx := context.Background()
	for _, id := range []string{"abandoned", "active", "streaming"} {
		_, err := r.Ensure(ctx, bidder.ID, id)
		require.NoError(t, err)
	}
	streaming, _ := r.Session("streaming")
	streaming.Attach(&recorder{})

	advance(t0.Add(90 * time.Minute))
	_, err := r.Ensure(ctx, bidder.ID, "active")
	require.NoError(t, err)

	advance(t0.Add(2*time.Hour + time.Minute))
	assert.Equal(t, 1, r.Reap(2*time.Hour))

	_, ok := r.Session("abandoned")
	assert.False(t, ok)
	_, ok = r.Session("active")
	assert.True(t, ok)
	_, ok = r.Session("streaming")
	assert.True(t, ok)
	assert.Equal(t, 8, hub.Len())

	assert.Zero(t, r.Reap(2*time.Hour))
}
