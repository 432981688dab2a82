// Package segment implements the in-memory segmented event store: a bounded,
// time-ordered ring of fixed-capacity segments supporting O(1) amortized
// append and O(log S + R) range queries. Segments are sized in record
// count and have no on-disk component.
package segment

import (
	"sort"
	"time"

	"rodan/internal/event"
)

// Segment is a bounded, append-only run of events. Once Capacity events have
// been pushed, further pushes are rejected until Clear resets it.
type Segment struct {
	events   []event.Event
	capacity int
}

// NewSegment returns an empty segment with the given fixed capacity.
func NewSegment(capacity int) *Segment {
	return &Segment{
		events:   make([]event.Event, 0, capacity),
		capacity: capacity,
	}
}

// Push appends e if the segment has room, reporting whether it did.
func (s *Segment) Push(e event.Event) bool {
	if len(s.events) >= s.capacity {
		return false
	}
	s.events = append(s.events, e)
	return true
}

// IsFull reports whether the segment has reached its capacity.
func (s *Segment) IsFull() bool {
	return len(s.events) >= s.capacity
}

// Len returns the number of events currently held.
func (s *Segment) Len() int {
	return len(s.events)
}

// FirstTS returns the timestamp of the oldest event, or the zero value if
// the segment is empty.
func (s *Segment) FirstTS() (t time.Time, ok bool) {
	if len(s.events) == 0 {
		return t, false
	}
	return s.events[0].Timestamp, true
}

// LastTS returns the timestamp of the newest event, or the zero value if the
// segment is empty.
func (s *Segment) LastTS() (t time.Time, ok bool) {
	if len(s.events) == 0 {
		return t, false
	}
	return s.events[len(s.events)-1].Timestamp, true
}

// IsBefore reports whether every event in the segment (if any) has a
// timestamp strictly before t. An empty segment is considered before
// everything; this only ever matters transiently during eviction reuse,
// where an empty back segment must sort ahead of the range the caller asked
// for rather than swallowing it.
func (s *Segment) IsBefore(t time.Time) bool {
	last, ok := s.LastTS()
	if !ok {
		return true
	}
	return last.Before(t)
}

// EventsSince returns the suffix of events with Timestamp >= since, or a copy
// of all events if since is nil. Events are time-ordered within a segment
// (append order equals time order because timestamps are assigned at push),
// so the lower bound is found with a binary search rather than a scan.
func (s *Segment) EventsSince(since *time.Time) []event.Event {
	if since == nil {
		out := make([]event.Event, len(s.events))
		copy(out, s.events)
		return out
	}
	idx := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].Timestamp.Before(*since)
	})
	out := make([]event.Event, len(s.events)-idx)
	copy(out, s.events[idx:])
	return out
}

// Clear resets the segment to empty, reusing its underlying storage.
func (s *Segment) Clear() {
	s.events = s.events[:0]
}
