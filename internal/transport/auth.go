package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type callerKey struct{}

// TokenResolver resolves a user ID from a sign-in token.
type TokenResolver interface {
	SignInWithToken(ctx context.Context, token string) (string, error)
}

// CallerFromContext returns the authenticated caller's user ID, if present.
func CallerFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(callerKey{}).(string)
	return uid, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			uid, err := resolver.SignInWithToken(r.Context(), token)
			if err != nil || uid == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
