package segment

import (
	"testing"
	"time"

	"rodan/internal/event"
)

func mkEvent(ts time.Time, payload string) event.Event {
	return event.Event{Timestamp: ts, Payload: payload}
}

func TestStoreAppendWithinCapacityPreservesOrder(t *testing.T) {
	st := NewStore(2, 3)
	base := time.Now()
	payloads := []string{"E1", "E2", "E3", "E4", "E5", "E6"}
	for i, p := range payloads {
		st.Append(mkEvent(base.Add(time.Duration(i)*time.Millisecond), p))
	}
	if st.SegmentCount() != 3 {
		t.Fatalf("expected 3 segments, got %d", st.SegmentCount())
	}
	got := st.QueryAll()
	if len(got) != len(payloads) {
		t.Fatalf("expected %d events, got %d", len(payloads), len(got))
	}
	for i, e := range got {
		if e.Payload != payloads[i] {
			t.Fatalf("event %d: expected %q got %q", i, payloads[i], e.Payload)
		}
	}
}

func TestStoreRetentionEvictsOldestSegment(t *testing.T) {
	st := NewStore(2, 2)
	base := time.Now()
	for i := 1; i <= 5; i++ {
		st.Append(mkEvent(base.Add(time.Duration(i)*time.Millisecond), "E"+string(rune('0'+i))))
	}
	if st.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments after retention, got %d", st.SegmentCount())
	}
	got := st.QueryAll()
	// With capacity 2 and max 2 segments: E1,E2 fill the first segment;
	// E3,E4 fill the second; E5 triggers retention, evicting the {E1,E2}
	// segment wholesale and reusing its storage as the new back segment
	// holding just E5. The ring is [{E3,E4},{E5}].
	want := []string{"E3", "E4", "E5"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, e := range got {
		if e.Payload != want[i] {
			t.Fatalf("event %d: expected %q got %q", i, want[i], e.Payload)
		}
	}
}

func TestStoreQuerySinceFiltersAndOrders(t *testing.T) {
	st := NewStore(2, 3)
	base := time.Now()
	t0 := base
	t1 := base.Add(10 * time.Second)
	t2 := base.Add(20 * time.Second)
	st.Append(mkEvent(t0, "E1"))
	st.Append(mkEvent(t1, "E2"))
	st.Append(mkEvent(t2, "E3"))

	since := t1
	got := st.QuerySince(&since)
	want := []string{"E2", "E3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(got), got)
	}
	for i, e := range got {
		if e.Payload != want[i] {
			t.Fatalf("event %d: expected %q got %q", i, want[i], e.Payload)
		}
	}
}

func TestStoreQuerySinceNilEqualsQueryAll(t *testing.T) {
	st := NewStore(2, 3)
	base := time.Now()
	st.Append(mkEvent(base, "E1"))
	st.Append(mkEvent(base.Add(time.Second), "E2"))

	all := st.QueryAll()
	since := st.QuerySince(nil)
	if len(all) != len(since) {
		t.Fatalf("expected QuerySince(nil) to match QueryAll, got %d vs %d", len(since), len(all))
	}
}

func TestStoreQuerySinceAfterAllIsEmpty(t *testing.T) {
	st := NewStore(2, 2)
	base := time.Now()
	st.Append(mkEvent(base, "E1"))
	st.Append(mkEvent(base.Add(time.Second), "E2"))

	since := base.Add(time.Hour)
	got := st.QuerySince(&since)
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestStoreFlushClearsEverything(t *testing.T) {
	st := NewStore(2, 3)
	base := time.Now()
	for i := 0; i < 5; i++ {
		st.Append(mkEvent(base.Add(time.Duration(i)*time.Millisecond), "E"))
	}
	st.Flush()
	if st.SegmentCount() != 0 {
		t.Fatalf("expected 0 segments after flush, got %d", st.SegmentCount())
	}
	if got := st.QueryAll(); len(got) != 0 {
		t.Fatalf("expected no events after flush, got %d", len(got))
	}
}

func TestSegmentIsBeforeEmptyIsAlwaysTrue(t *testing.T) {
	seg := NewSegment(2)
	if !seg.IsBefore(time.Now()) {
		t.Fatal("expected empty segment to report IsBefore == true")
	}
}

func TestSegmentPushRejectsBeyondCapacity(t *testing.T) {
	seg := NewSegment(1)
	if !seg.Push(mkEvent(time.Now(), "E1")) {
		t.Fatal("expected first push to succeed")
	}
	if seg.Push(mkEvent(time.Now(), "E2")) {
		t.Fatal("expected push beyond capacity to fail")
	}
	if !seg.IsFull() {
		t.Fatal("expected segment to report full")
	}
}
