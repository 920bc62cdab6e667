// Package feed is the live query hub. Repositories publish document changes
// and watchers subscribe with a keyed query, receiving every matching change
// on a buffered channel until the subscription is closed.
package feed

import "time"

type Kind string

const (
	KindAdded    Kind = "added"
	KindModified Kind = "modified"
	KindRemoved  Kind = "removed"
)

type Collection string

const (
	Posts         Collection = "posts"
	Bids          Collection = "bids"
	Conversations Collection = "conversations"
	Messages      Collection = "messages"
)

// Change describes a single document write. Doc holds the document value
// after the write and is nil for removals.
type Change struct {
	Collection Collection
	Kind       Kind
	ID         string
	Doc        any
	At         time.Time
}

// Query selects the changes a subscription receives. Key identifies the
// query; subscribing twice with the same key replaces the first handle.
type Query struct {
	Key        string
	Collection Collection
	Match      func(Change) bool
}

func (q Query) matches(c Change) bool {
	if q.Collection != "" && q.Collection != c.Collection {
		return false
	}
	return q.Match == nil || q.Match(c)
}
