package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

// ClaimsContextKey is the key for storing verified claims in context
const ClaimsContextKey contextKey = "claims"

// ExtractBearer pulls the token out of an Authorization header.
// Returns ErrMissingToken when the header is absent or malformed.
func ExtractBearer(authHeader string) (string, error) {
	if authHeader == "" {
		return "", models.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", models.ErrMissingToken
	}

	return parts[1], nil
}

// RequireAdmin rejects requests without a valid, unexpired admin token and
// injects the verified claims into the request context.
func RequireAdmin(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := ExtractBearer(r.Header.Get("Authorization"))
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Authentication token required")
				return
			}

			claims, err := tm.Verify(tokenString)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext extracts verified claims from the request context
func GetClaimsFromContext(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(ClaimsContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
