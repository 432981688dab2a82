// Package ingest coordinates the per-push work triggered by a newly
// received event: live fan-out, durable storage, and optional logging.
package ingest

import (
	"time"

	"rodan/internal/broadcast"
	"rodan/internal/event"
	"rodan/internal/logbuffer"
	"rodan/internal/segment"
)

// Ingestor drives Push, fanning a single payload out to the broadcast hub,
// the segmented store, and (if enabled) the log buffer. All three are
// attempted independently; none failing is fatal to the others, since none
// of them can fail in a way the caller could act on (Hub.Send and
// Buffer.Enqueue never return an error, and Store.Append never rejects a
// well-formed event).
type Ingestor struct {
	store        *segment.Store
	hub          *broadcast.Hub
	logBuf       *logbuffer.Buffer
	eventLogging bool
}

// New returns an Ingestor writing to store and hub, and to logBuf when
// eventLogging is true.
func New(store *segment.Store, hub *broadcast.Hub, logBuf *logbuffer.Buffer, eventLogging bool) *Ingestor {
	return &Ingestor{store: store, hub: hub, logBuf: logBuf, eventLogging: eventLogging}
}

// Push stamps payload with the current UTC time and fans it to the
// broadcast hub, the segmented store, and (if event logging is enabled)
// the log buffer.
func (ig *Ingestor) Push(payload string) {
	now := time.Now().UTC()
	ig.hub.Send(payload)
	ig.store.Append(event.Event{Timestamp: now, Payload: payload})
	if ig.eventLogging {
		ig.logBuf.Enqueue(logbuffer.NewLogRecord(now, payload))
	}
}
