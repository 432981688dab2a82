// Package stream bridges broadcast.Hub subscriptions to HTTP Server-Sent
// Event responses, one per connected client.
//
// Each client runs a loop selecting over its context, the next broadcast
// result, and a heartbeat timer. Reading from a broadcast.Subscription
// rather than a plain channel lets a lagged result be turned into a
// heartbeat instead of a dropped connection.
package stream

import (
	"encoding/json"
	"net/http"
	"time"

	"rodan/internal/broadcast"
)

const defaultHeartbeatInterval = 30 * time.Second

// message is the single JSON object emitted per line of the stream.
type message struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Serve writes payloads from sub to w as newline-delimited JSON
// Server-Sent Events until the client disconnects or the hub closes. It
// blocks until the stream ends.
func Serve(w http.ResponseWriter, r *http.Request, sub *broadcast.Subscription) {
	ServeWithHeartbeat(w, r, sub, defaultHeartbeatInterval)
}

// ServeWithHeartbeat is Serve with an explicit heartbeat interval, exposed
// for tests that can't wait 30 seconds for a heartbeat to fire.
func ServeWithHeartbeat(w http.ResponseWriter, r *http.Request, sub *broadcast.Subscription, heartbeat time.Duration) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	type recvOutcome struct {
		res broadcast.Result
		err error
	}
	results := make(chan recvOutcome, 1)
	recv := func() {
		res, err := sub.Recv(ctx)
		results <- recvOutcome{res, err}
	}
	go recv()

	for {
		select {
		case <-ctx.Done():
			return

		case out := <-results:
			if out.err != nil {
				return // context canceled inside Recv: client disconnected
			}
			switch out.res.Kind {
			case broadcast.Payload:
				if !writeMessage(w, flusher, message{Type: "event", Data: out.res.Payload}) {
					return
				}
			case broadcast.Lagged:
				if !writeMessage(w, flusher, message{Type: "heartbeat", Data: "ping"}) {
					return
				}
			case broadcast.Closed:
				return
			}
			go recv()

		case <-ticker.C:
			if !writeMessage(w, flusher, message{Type: "heartbeat", Data: "ping"}) {
				return
			}
		}
	}
}

func writeMessage(w http.ResponseWriter, flusher http.Flusher, m message) bool {
	data, err := json.Marshal(m)
	if err != nil {
		return true
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
