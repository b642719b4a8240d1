// Package router provides HTTP routing configuration for the social feed API.
// It sets up routes and applies middleware like CORS and JWT auth.
package router

import (
	"net/http"
	"time"

	"github.com/junthetechguy/sns-demo/internal/handlers"
)

// Router wraps the HTTP mux and provides route configuration.
type Router struct {
	mux       *http.ServeMux
	handlers  *handlers.Handlers
	jwtSecret string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *handlers.Handlers, jwtSecret string) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		handlers:  h,
		jwtSecret: jwtSecret,
	}
	r.setupRoutes()
	return r
}

// setupRoutes configures all HTTP routes for the API.
func (r *Router) setupRoutes() {
	// Public user endpoints
	r.mux.HandleFunc("/api/v1/users/join", r.handlers.Join)
	r.mux.HandleFunc("/api/v1/users/login", r.handlers.Login)

	// Alarm endpoints
	r.mux.HandleFunc("/api/v1/users/alarm", r.authenticated(r.handlers.ListAlarms))
	r.mux.HandleFunc("/api/v1/users/alarm/subscribe", r.authenticated(r.handlers.Subscribe))

	// Post endpoints
	r.mux.HandleFunc("/api/v1/posts", r.authenticated(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			r.handlers.CreatePost(w, req)
		case http.MethodGet:
			r.handlers.ListPosts(w, req)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	r.mux.HandleFunc("/api/v1/posts/my", r.authenticated(r.handlers.ListMyPosts))
	r.mux.HandleFunc("/api/v1/posts/update", r.authenticated(r.handlers.UpdatePost))
	r.mux.HandleFunc("/api/v1/posts/delete", r.authenticated(r.handlers.DeletePost))

	r.mux.HandleFunc("/api/v1/posts/like", r.authenticated(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			r.handlers.LikePost(w, req)
		case http.MethodGet:
			r.handlers.LikeCount(w, req)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	r.mux.HandleFunc("/api/v1/posts/comment", r.authenticated(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			r.handlers.CreateComment(w, req)
		case http.MethodGet:
			r.handlers.ListComments(w, req)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Health check endpoint
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Handler returns the HTTP handler with CORS middleware applied.
func (r *Router) Handler() http.Handler {
	return corsMiddleware(r.mux)
}

// corsMiddleware applies CORS headers to all requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer creates a new HTTP server with the router configured.
// WriteTimeout stays unset because alarm subscriptions are long-lived
// streams; the subscription handler enforces its own idle timeout.
func NewServer(port string, h *handlers.Handlers, jwtSecret string) *http.Server {
	router := NewRouter(h, jwtSecret)
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
