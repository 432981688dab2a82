package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"rodan/internal/stream"
)

type pingResponse struct {
	Msg string `json:"msg"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Msg: "pong"})
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	sub := s.hub.Subscribe()
	stream.Serve(w, r, sub)
}

type eventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// handleEvents serves range reads. A present Last-Received-Update header
// must parse as RFC3339; a malformed header is rejected with 400 before
// the store is ever consulted.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.Header.Get("Last-Received-Update"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid Last-Received-Update header")
			return
		}
		since = &ts
	}

	events := s.querier.RangeSince(since)
	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = eventResponse{Timestamp: e.Timestamp, Message: e.Payload}
	}
	writeJSON(w, http.StatusOK, resp)
}

type ingestPayload struct {
	Events []string `json:"events"`
}

// handleIngest accepts a batch of raw event payload strings, checking the
// configured API key (if any) before fanning each one out through the
// Ingestor.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	cfg := s.snapshot.Load()
	if cfg.App.Events == nil || cfg.App.Events.HTTP == nil {
		writeError(w, http.StatusInternalServerError, "HTTP events are not configured")
		return
	}

	if s.keyChecker != nil {
		if !s.keyChecker.Check(r.Header.Get("x-api-key")) {
			writeError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
	}

	var payload ingestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, p := range payload.Events {
		s.ingestor.Push(p)
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Events ingested"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found")
}
