// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const adminKey ctxKey = "admin"

// TokenValidator verifies a bearer access token and returns the admin id
// it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It checks whether the incoming HTTP request carries a valid
// "Authorization: Bearer <token>" header. The /auth/login endpoint is
// excluded so admins can obtain a token in the first place, and /uploads/
// is excluded so stored foto/cv references resolve without credentials.
//
// On successful validation, the admin id from the token is stored in the
// request context, so it can be used downstream as the authenticated caller.
func BearerAuth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/login" || strings.HasPrefix(r.URL.Path, "/uploads/") {
				// Allow obtaining a token and fetching stored files
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			adminID, err := v.ValidateToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), adminKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminIDFromContext extracts the authenticated admin id from the request
// context. Returns an empty string if not found.
func GetAdminIDFromContext(ctx context.Context) string {
	val := ctx.Value(adminKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
