package httpapi

import "net/http"

// corsMiddleware allows any header and method; the origin is wildcarded
// only when cors-url is exactly ["*"] and the server is not running in
// production, otherwise each configured origin is echoed back individually.
func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := s.snapshot.Load().Server

			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")

			origin := r.Header.Get("Origin")
			if len(cfg.CORSURL) == 1 && cfg.CORSURL[0] == "*" && !cfg.Production {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin != "" && originAllowed(origin, cfg.CORSURL) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == origin {
			return true
		}
	}
	return false
}
