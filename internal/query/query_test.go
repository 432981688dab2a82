package query

import (
	"testing"
	"time"

	"rodan/internal/event"
	"rodan/internal/segment"
)

func TestRangeSinceNilReturnsAll(t *testing.T) {
	store := segment.NewStore(10, 3)
	store.Append(event.Event{Timestamp: time.Now(), Payload: "a"})
	store.Append(event.Event{Timestamp: time.Now(), Payload: "b"})

	q := New(store)
	got := q.RangeSince(nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestRangeSinceFiltersByTimestamp(t *testing.T) {
	store := segment.NewStore(10, 3)
	base := time.Now()
	store.Append(event.Event{Timestamp: base, Payload: "a"})
	cutoff := base.Add(time.Second)
	store.Append(event.Event{Timestamp: base.Add(2 * time.Second), Payload: "b"})

	q := New(store)
	got := q.RangeSince(&cutoff)
	if len(got) != 1 || got[0].Payload != "b" {
		t.Fatalf("expected only %q, got %+v", "b", got)
	}
}
