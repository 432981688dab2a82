package httpapi

import (
	"net/http"
	"strings"

	"rodan/internal/auth"
)

const bearerPrefix = "Bearer "

// authMiddleware gates every route it wraps behind a valid bearer JWT: a
// missing or malformed Authorization header, or a token that fails Verify,
// is rejected with 401 before the wrapped handler ever runs.
func (s *Server) authMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := s.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			r = r.WithContext(auth.WithClaims(r.Context(), claims))
			next.ServeHTTP(w, r)
		})
	}
}
