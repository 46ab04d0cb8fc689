package middleware

import (
	"context"
	"net/http"
	"strings"

	"finbook/internal/apierr"
	"finbook/internal/auth"
	"finbook/internal/httpx"
)

type contextKey string

const userIDKey contextKey = "user_id"

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// WithUserID injects an authenticated user id; used by handler tests.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth requires a valid bearer token and stores the user id in the request
// context. Missing or invalid credentials produce the UNAUTHENTICATED
// envelope; handlers behind this middleware only branch on presence.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.Error(w, r, apierr.Unauthenticated())
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpx.Error(w, r, apierr.Unauthenticated())
				return
			}
			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				httpx.Error(w, r, apierr.Unauthenticated())
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
