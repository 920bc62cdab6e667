package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Change {
	t.Helper()
	select {
	case c, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return c
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}
	return Change{}
}

func TestHub_PublishMatchesQuery(t *testing.T) {
	hub := NewHub(4)
	bidsSub := hub.Subscribe(Query{Key: "bids", Collection: Bids})
	ownSub := hub.Subscribe(Query{
		Key:        "own-bids",
		Collection: Bids,
		Match:      func(c Change) bool { return c.Doc == "mine" },
	})

	hub.Publish(Change{Collection: Bids, Kind: KindAdded, ID: "b1", Doc: "theirs"})
	hub.Publish(Change{Collection: Posts, Kind: KindAdded, ID: "p1"})
	hub.Publish(Change{Collection: Bids, Kind: KindModified, ID: "b2", Doc: "mine"})

	assert.Equal(t, "b1", receive(t, bidsSub).ID)
	assert.Equal(t, "b2", receive(t, bidsSub).ID)
	got := receive(t, ownSub)
	assert.Equal(t, "b2", got.ID)
	assert.Equal(t, KindModified, got.Kind)
}

func TestHub_DuplicateKeyReplacesSubscription(t *testing.T) {
	hub := NewHub(4)
	first := hub.Subscribe(Query{Key: "q", Collection: Bids})
	second := hub.Subscribe(Query{Key: "q", Collection: Bids})

	_, open := <-first.C()
	assert.False(t, open, "first handle should be closed")
	assert.Equal(t, 1, hub.Len())

	hub.Publish(Change{Collection: Bids, ID: "b1"})
	assert.Equal(t, "b1", receive(t, second).ID)

	// closing the stale handle must not remove its replacement
	first.Close()
	assert.Equal(t, 1, hub.Len())
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe(Query{Key: "q"})
	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.Len())

	hub.Publish(Change{Collection: Bids, ID: "b1"})
	_, open := <-sub.C()
	assert.False(t, open)
}

func TestHub_FullBufferDropsChange(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe(Query{Key: "q"})

	hub.Publish(Change{Collection: Bids, ID: "b1"})
	hub.Publish(Change{Collection: Bids, ID: "b2"})

	assert.Equal(t, "b1", receive(t, sub).ID)
	select {
	case c := <-sub.C():
		t.Fatalf("unexpected change %q", c.ID)
	default:
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(1)
	a := hub.Subscribe(Query{Key: "a"})
	b := hub.Subscribe(Query{Key: "b"})
	hub.Close()

	_, openA := <-a.C()
	_, openB := <-b.C()
	assert.False(t, openA)
	assert.False(t, openB)
	assert.Equal(t, 0, hub.Len())
}
