package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate extracts and verifies the bearer token on a request. It is
// shared between the Auth middleware and handlers that run their own checks.
func Authenticate(r *http.Request, tm *auth.TokenManager) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return nil, auth.ErrInvalidToken
	}
	return tm.Verify(strings.TrimSpace(header[len(prefix):]))
}

// Auth rejects requests without a valid bearer token before the wrapped
// handler sees them. Authorization runs before any body validation.
func Auth(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := Authenticate(r, tm)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the claims stored by Auth.
func IdentityFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*auth.Claims)
	return claims, ok
}
