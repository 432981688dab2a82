// Package httpapi wires the HTTP surface described in this service's
// configuration: ping, the live SSE stream, range reads over the event
// store, and the optional HTTP event-ingestion endpoint.
//
// Middleware order is RealIP, request ID, access log, Recoverer, CORS, so
// recovered panics still produce an access-log line and CORS headers are
// present on every response including errors.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rodan/internal/auth"
	"rodan/internal/broadcast"
	"rodan/internal/config"
	"rodan/internal/ingest"
	"rodan/internal/query"
)

// Server holds the dependencies every handler needs and builds the routed
// chi.Mux that serves them.
type Server struct {
	router *chi.Mux

	snapshot   *config.Snapshot
	hub        *broadcast.Hub
	querier    *query.Querier
	ingestor   *ingest.Ingestor
	verifier   *auth.Verifier
	keyChecker *auth.KeyChecker
	logger     *slog.Logger
}

// New builds a Server wired to the given components and returns it with
// its routes already registered. verifier and keyChecker may be nil when
// auth is not required or HTTP ingestion is not configured, respectively.
func New(snapshot *config.Snapshot, hub *broadcast.Hub, querier *query.Querier, ingestor *ingest.Ingestor, verifier *auth.Verifier, keyChecker *auth.KeyChecker, logger *slog.Logger) *Server {
	s := &Server{
		snapshot:   snapshot,
		hub:        hub,
		querier:    querier,
		ingestor:   ingestor,
		verifier:   verifier,
		keyChecker: keyChecker,
		logger:     logger,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the server's routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware())
	r.Use(s.accessLogMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware())

	r.Route("/api", func(r chi.Router) {
		cfg := s.snapshot.Load()
		if cfg.App.AuthRequired {
			r.Use(s.authMiddleware())
		}

		r.Get("/ping", s.handlePing)
		r.Get("/notify", s.handleNotify)
		r.Get("/events", s.handleEvents)

		if cfg.App.Events != nil && cfg.App.Events.HTTP != nil {
			r.Post(cfg.App.Events.HTTP.Endpoint, s.handleIngest)
		}
	})

	r.NotFound(s.handleNotFound)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
