package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/junthetechguy/sns-demo/internal/auth"
	"github.com/junthetechguy/sns-demo/internal/handlers"
)

// authenticated wraps a handler with JWT verification. Verified claims are
// resolved to a user and stored in the request context.
func (r *Router) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		authHeader := req.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			http.Error(w, "Authorization header must be a Bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(r.jwtSecret, tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := r.handlers.ResolveUser(req.Context(), claims.UserName)
		if err != nil {
			slog.Warn("Token names an unknown user", "user_name", claims.UserName, "error", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, req.WithContext(handlers.ContextWithUser(req.Context(), user)))
	}
}
