// Package query serves point-in-time range reads from the segmented store
// for pull-based consumers.
package query

import (
	"time"

	"rodan/internal/event"
	"rodan/internal/segment"
)

// Querier reads from a segment.Store without mutating it.
type Querier struct {
	store *segment.Store
}

// New returns a Querier reading from store.
func New(store *segment.Store) *Querier {
	return &Querier{store: store}
}

// RangeSince returns every retained event with Timestamp >= *since, or every
// retained event if since is nil.
func (q *Querier) RangeSince(since *time.Time) []event.Event {
	return q.store.QuerySince(since)
}
