package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds CORS configuration. The backend serves a single known
// frontend, so one allowed origin is the common case; "*" opens it up for
// local development.
type CORSConfig struct {
	AllowedOrigin  string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         string // seconds, preformatted
}

// DefaultCORSConfig returns the CORS policy for the public site origin.
func DefaultCORSConfig(siteOrigin string) *CORSConfig {
	return &CORSConfig{
		AllowedOrigin:  siteOrigin,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         "86400",
	}
}

// CORS returns a CORS middleware handler. Preflight requests are answered
// with 204 and never reach the routed handlers.
func CORS(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Fail closed: only the configured origin is reflected back.
			if origin != "" && (config.AllowedOrigin == "*" || origin == config.AllowedOrigin) {
				w.Header().Set("Access-Control-Allow-Origin", config.AllowedOrigin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", config.MaxAge)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
