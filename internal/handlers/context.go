package handlers

import (
	"context"
	"net/http"

	"github.com/junthetechguy/sns-demo/internal/database"
)

type contextKey int

const userContextKey contextKey = iota

// ContextWithUser returns a context carrying the authenticated user.
// The router's auth middleware calls this after verifying the JWT.
func ContextWithUser(ctx context.Context, user *database.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user stored in the context.
func UserFromContext(ctx context.Context) (*database.User, bool) {
	user, ok := ctx.Value(userContextKey).(*database.User)
	return user, ok
}

// requireUser extracts the authenticated user or writes a 401.
// Returns the user and true if present, nil and false otherwise.
func requireUser(w http.ResponseWriter, r *http.Request) (*database.User, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}
