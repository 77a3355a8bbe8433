package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS applies Cross-Origin Resource Sharing headers and answers preflight
// requests. With no allowed origins every origin is accepted with "*". Otherwise
// the request Origin must match one of allowedOrigins; matching origins are
// echoed back with credentials allowed so the access_token cookie is sent.
// Entries are either full origins ("https://app.example.com") or bare hosts.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case len(allowedOrigins) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin == "":
				// Same-origin or non-browser request
			case isOriginAllowed(origin, allowedOrigins):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			default:
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())

	for _, allowed := range allowedOrigins {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if strings.Contains(allowed, "://") {
			if scheme+"://"+host == strings.TrimSuffix(allowed, "/") {
				return true
			}
			continue
		}
		if host == allowed || hostname == allowed {
			return true
		}
	}
	return false
}
