package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-account-api/internal/domain"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// TokenVerifier validates a raw bearer credential and returns the principal.
// Satisfied by the identity gateway service.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*domain.Principal, error)
}

// Auth returns middleware that validates the Bearer token and injects the
// principal into the request context. A missing/malformed header and a failed
// verification produce the same caller-visible 401; they differ only in the
// log line.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				slog.Debug("auth: missing or malformed authorization header", "path", r.URL.Path)
				writeJSONError(w, http.StatusUnauthorized, "no authorization token provided")
				return
			}
			raw := strings.TrimPrefix(authHeader, "Bearer ")
			principal, err := verifier.VerifyToken(r.Context(), raw)
			if err != nil {
				slog.Debug("auth: token verification failed", "path", r.URL.Path, "err", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext extracts the authenticated principal from the request context.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*domain.Principal)
	return p, ok
}
