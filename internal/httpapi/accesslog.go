package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDMiddleware stamps every request with a fresh UUID, echoed back
// as X-Request-Id and threaded into the access log so a single request can
// be correlated across log lines.
func (s *Server) requestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
		})
	}
}

// accessLogMiddleware logs one line per request after it completes: method,
// path, status, and a level derived from the status code (debug on 404,
// warn on 5xx, info otherwise).
func (s *Server) accessLogMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			attrs := []any{
				"request_id", requestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"duration", time.Since(start),
			}
			switch {
			case wrapped.status == http.StatusNotFound:
				s.logger.Debug("http request", attrs...)
			case wrapped.status >= 500:
				s.logger.Warn("http request", attrs...)
			default:
				s.logger.Info("http request", attrs...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the underlying writer so streaming handlers behind this
// middleware can still flush each event to the client.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
