package main

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"ashfall/internal/config"
)

// worldAuthMiddleware guards the trusted world endpoints. Production with
// no shared secret configured refuses outright rather than serving an
// open trusted surface; development without a secret stays open for
// local worlds.
func worldAuthMiddleware(cfg config.ServerConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.WorldSharedSecret == "" {
				if cfg.IsProduction() {
					writeHTTPError(w, http.StatusServiceUnavailable, "endpoint_disabled")
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if !checkSecret(r, cfg.WorldSharedSecret, "X-World-Secret") {
				writeHTTPError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func opsAuthMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey != "" {
				if !checkSecret(r, apiKey, "X-API-Key") {
					writeHTTPError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkSecret(r *http.Request, want, header string) bool {
	got := r.Header.Get(header)
	if got == "" {
		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			got = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
