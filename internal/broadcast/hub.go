// Package broadcast implements the live fan-out of newly ingested payloads to
// any number of concurrent subscribers, independent of the durable segmented
// store.
//
// The hub keeps a ring of recent payloads indexed by a monotonic sequence
// number; each subscriber tracks its own read cursor into that ring rather
// than owning a buffered channel, so a send never has to choose a channel
// to drop. A lagging subscriber is discovered and resumed lazily, on its
// own next Recv. Waiters are woken by closing a shared channel and
// installing a fresh one.
package broadcast

import (
	"context"
	"sync"
)

const defaultCapacity = 100

// ResultKind discriminates the outcome of a Subscription.Recv call.
type ResultKind int

const (
	// Payload indicates Result.Payload holds the next value in order.
	Payload ResultKind = iota
	// Lagged indicates the subscriber fell behind the ring; Result.Lagged
	// reports a lower bound on how many payloads were missed. The
	// subscriber's cursor has been fast-forwarded to the current oldest
	// retained payload.
	Lagged
	// Closed indicates the hub is shutting down; no further payloads will
	// arrive.
	Closed
)

// Result is the outcome of a single Subscription.Recv call.
type Result struct {
	Kind    ResultKind
	Payload string
	Lagged  uint64
}

// signal is a broadcast wakeup: Notify wakes every current waiter by closing
// ch and installing a fresh one. Callers must re-fetch C() after each wakeup.
type signal struct {
	mu sync.Mutex
	ch chan struct{}
}

func newSignal() *signal { return &signal{ch: make(chan struct{})} }

func (s *signal) notify() {
	s.mu.Lock()
	close(s.ch)
	s.ch = make(chan struct{})
	s.mu.Unlock()
}

func (s *signal) c() <-chan struct{} {
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()
	return ch
}

// Hub is a multi-producer/multi-consumer fan-out of payload strings backed by
// a fixed-capacity ring. Send never blocks on subscribers; a subscriber that
// falls more than capacity payloads behind observes a single Lagged result
// and resumes at the oldest payload still in the ring rather than being
// disconnected.
type Hub struct {
	mu      sync.Mutex
	ring    []string
	cap     int
	nextSeq uint64
	closed  bool
	wake    *signal
}

// NewHub creates a Hub with the given ring capacity. A non-positive capacity
// falls back to the default of 100.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Hub{
		ring: make([]string, 0, capacity),
		cap:  capacity,
		wake: newSignal(),
	}
}

// Send publishes payload to every current subscriber; a Subscription created
// afterwards starts past it and never receives it. It never
// blocks: if no subscribers exist, the payload is simply absent from the live
// stream (it still reaches the durable store and log buffer via the
// ingestor's independent calls).
func (h *Hub) Send(payload string) {
	h.mu.Lock()
	idx := int(h.nextSeq % uint64(h.cap))
	if len(h.ring) < h.cap {
		h.ring = append(h.ring, payload)
	} else {
		h.ring[idx] = payload
	}
	h.nextSeq++
	h.mu.Unlock()
	h.wake.notify()
}

// Close terminates the hub; all blocked and future Recv calls return Closed.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.wake.notify()
}

// Subscription is a per-subscriber cursor into a Hub's ring.
type Subscription struct {
	hub *Hub
	seq uint64
}

// Subscribe returns a fresh Subscription positioned at the hub's current
// head; it will observe all payloads sent from this point on.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	seq := h.nextSeq
	h.mu.Unlock()
	return &Subscription{hub: h, seq: seq}
}

// Recv blocks until a payload is available, the subscriber has lagged, the
// hub closes, or ctx is done. A ctx cancellation returns ctx.Err(); callers
// driving an SSE loop should treat that as "stop looping", not as Closed.
func (s *Subscription) Recv(ctx context.Context) (Result, error) {
	h := s.hub
	for {
		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			return Result{Kind: Closed}, nil
		}

		oldest := uint64(0)
		if h.nextSeq > uint64(h.cap) {
			oldest = h.nextSeq - uint64(h.cap)
		}
		if s.seq < oldest {
			missed := oldest - s.seq
			s.seq = oldest
			h.mu.Unlock()
			return Result{Kind: Lagged, Lagged: missed}, nil
		}

		if s.seq < h.nextSeq {
			idx := int(s.seq % uint64(h.cap))
			payload := h.ring[idx]
			s.seq++
			h.mu.Unlock()
			return Result{Kind: Payload, Payload: payload}, nil
		}

		wake := h.wake.c()
		h.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}
