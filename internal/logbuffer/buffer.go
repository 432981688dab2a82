// Package logbuffer holds ingested events awaiting a batched write to the
// on-disk event log.
//
// Buffer uses a two-slot enqueue discipline: an enqueue prefers an
// uncontended primary slot via a non-blocking try-lock, falling back to a
// secondary slot under a blocking lock only when primary is already held by
// a concurrent enqueue or by a drain in progress. Drain empties primary
// opportunistically (skipping it for this round if still contended) and
// always empties secondary, so no record is ever lost to a missed lock.
package logbuffer

import (
	"sync"
	"time"
)

// LogRecord is the persisted form of one ingested event.
type LogRecord struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Target    string `json:"target"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// NewLogRecord builds the LogRecord for a payload ingested at ts.
func NewLogRecord(ts time.Time, payload string) LogRecord {
	return LogRecord{
		Timestamp: ts.UTC().Format(time.RFC3339),
		Level:     "INFO",
		Target:    "rodan.events",
		Message:   payload,
		Type:      "notifications",
	}
}

// Buffer is a concurrency-safe, non-blocking, loss-free queue of LogRecords.
type Buffer struct {
	primaryMu sync.Mutex
	primary   []LogRecord

	secondaryMu sync.Mutex
	secondary   []LogRecord
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Enqueue inserts r without blocking on a concurrent drain when possible.
func (b *Buffer) Enqueue(r LogRecord) {
	if b.primaryMu.TryLock() {
		b.primary = append(b.primary, r)
		b.primaryMu.Unlock()
		return
	}
	b.secondaryMu.Lock()
	b.secondary = append(b.secondary, r)
	b.secondaryMu.Unlock()
}

// Drain removes and returns every buffered record in insertion order within
// each slot (primary first, then secondary). It never blocks longer than it
// takes to acquire the secondary slot; if the primary slot is contended
// (e.g. a concurrent Enqueue holds it), this Drain simply leaves it for the
// next round rather than waiting.
func (b *Buffer) Drain() []LogRecord {
	var out []LogRecord

	if b.primaryMu.TryLock() {
		if len(b.primary) > 0 {
			out = append(out, b.primary...)
			b.primary = b.primary[:0]
		}
		b.primaryMu.Unlock()
	}

	b.secondaryMu.Lock()
	if len(b.secondary) > 0 {
		out = append(out, b.secondary...)
		b.secondary = b.secondary[:0]
	}
	b.secondaryMu.Unlock()

	return out
}
