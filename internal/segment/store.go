package segment

import (
	"sort"
	"sync"
	"time"

	"rodan/internal/event"
)

// Store is an ordered ring of segments enforcing a fixed per-segment
// capacity and a fixed maximum segment count. Appends are serialized against
// each other and against queries by a single RWMutex; holding the write lock
// during Append performs no I/O, matching the O(1) amortized append bound.
//
// Eviction reuses the oldest segment's backing storage as the new back
// segment rather than allocating a fresh one, avoiding allocator churn under
// steady-state load.
type Store struct {
	mu          sync.RWMutex
	segments    []*Segment
	segmentCap  int
	maxSegments int
}

// NewStore creates an empty store with the given per-segment capacity and
// maximum segment count. Both must be positive; config validation is
// responsible for enforcing that before construction.
func NewStore(segmentCap, maxSegments int) *Store {
	return &Store{
		segments:    make([]*Segment, 0, maxSegments),
		segmentCap:  segmentCap,
		maxSegments: maxSegments,
	}
}

// Append records e, creating a new segment or evicting the oldest one if
// required. At most maxSegments segments are ever held, and within/across
// segments events remain monotonically ordered by timestamp.
func (st *Store) Append(e event.Event) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if n := len(st.segments); n > 0 && st.segments[n-1].Push(e) {
		return
	}

	if len(st.segments) < st.maxSegments {
		seg := NewSegment(st.segmentCap)
		seg.Push(e)
		st.segments = append(st.segments, seg)
		return
	}

	// Retention: evict the oldest segment, reusing its storage as the new
	// back segment.
	front := st.segments[0]
	st.segments = append(st.segments[1:], front)
	front.Clear()
	front.Push(e)
}

// QuerySince returns all retained events with Timestamp >= *since, in time
// order. A nil since is equivalent to QueryAll.
func (st *Store) QuerySince(since *time.Time) []event.Event {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if since == nil {
		return st.queryAllLocked()
	}

	start := sort.Search(len(st.segments), func(i int) bool {
		return !st.segments[i].IsBefore(*since)
	})

	var out []event.Event
	for _, seg := range st.segments[start:] {
		out = append(out, seg.EventsSince(since)...)
	}
	if out == nil {
		out = []event.Event{}
	}
	return out
}

// QueryAll returns every retained event in time order.
func (st *Store) QueryAll() []event.Event {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.queryAllLocked()
}

func (st *Store) queryAllLocked() []event.Event {
	var out []event.Event
	for _, seg := range st.segments {
		out = append(out, seg.EventsSince(nil)...)
	}
	if out == nil {
		out = []event.Event{}
	}
	return out
}

// Flush drops every segment, returning the store to empty.
func (st *Store) Flush() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.segments = st.segments[:0]
}

// SegmentCount returns the number of segments currently held. Exposed for
// tests that assert the retention invariant directly.
func (st *Store) SegmentCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.segments)
}
