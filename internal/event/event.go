// Package event defines the immutable value type recorded by the ingestion
// pipeline and returned by range queries.
package event

import "time"

// Event is a single recorded payload, timestamped by the core at push time.
// The timestamp is never taken from the caller.
type Event struct {
	Timestamp time.Time
	Payload   string
}
