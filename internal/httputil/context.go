package httputil

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// WithUserID attaches the authenticated Supabase user to the request
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
}

// GetUserID returns the authenticated user, or "" for anonymous requests
func GetUserID(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// UserIDFromContext is GetUserID for code that only holds the context
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}
