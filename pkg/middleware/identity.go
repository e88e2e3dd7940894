package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dritonsh/cimerat/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserNameKey is the context key for the current member name
	UserNameKey ContextKey = "user_name"
	// FlatIDKey is the context key for the current flat id
	FlatIDKey ContextKey = "flat_id"
)

// Identity reads the caller-supplied identity from request headers. The
// current member comes from X-User-Name and is required; the current flat
// comes from X-Flat-ID and is optional (some endpoints work without one).
// The identity is trusted as-is: there is no authentication in this system,
// the client says who is acting and the server believes it.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get("X-User-Name"))
		if user == "" {
			response.Unauthorized(w, "X-User-Name header required")
			return
		}

		ctx := context.WithValue(r.Context(), UserNameKey, user)

		if flatID := strings.TrimSpace(r.Header.Get("X-Flat-ID")); flatID != "" {
			ctx = context.WithValue(ctx, FlatIDKey, flatID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser extracts the current member name from the request context
func CurrentUser(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(UserNameKey).(string)
	return user, ok
}

// CurrentFlat extracts the current flat id from the request context
func CurrentFlat(ctx context.Context) (string, bool) {
	flatID, ok := ctx.Value(FlatIDKey).(string)
	return flatID, ok
}
