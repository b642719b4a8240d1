package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/junthetechguy/sns-demo/internal/auth"
	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/stream"
)

// JoinRequest represents a request to register a new user.
type JoinRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Join registers a new user.
func (h *Handlers) Join(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req JoinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UserName == "" {
		http.Error(w, "user_name is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "password is required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err, "user_name", req.UserName)
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	user, err := h.db.CreateUser(ctx, req.UserName, hash)
	if handleDBError(w, err, "user", req.UserName) {
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// LoginRequest represents a login request.
type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and issues a JWT.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UserName == "" || req.Password == "" {
		http.Error(w, "user_name and password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	user, err := h.ResolveUser(ctx, req.UserName)
	if err != nil {
		// Not-found and credential failures look the same to the client.
		http.Error(w, "Invalid user name or password", http.StatusUnauthorized)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		http.Error(w, "Invalid user name or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID, user.UserName, h.tokenTTL)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "user_name", user.UserName)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// ResolveUser resolves a user by name through the cache, falling back to the
// database and backfilling the cache on a miss. The router's auth middleware
// uses it to turn verified claims into a user.
func (h *Handlers) ResolveUser(ctx context.Context, userName string) (*database.User, error) {
	cached, err := h.users.GetUser(ctx, userName)
	if err != nil {
		slog.Warn("User cache lookup failed", "error", err, "user_name", userName)
	}
	if cached != nil {
		return cached, nil
	}

	user, err := h.db.GetUserByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if err := h.users.SetUser(ctx, user); err != nil {
		slog.Warn("Failed to cache user", "error", err, "user_name", userName)
	}
	return user, nil
}

// ListAlarms returns a page of the authenticated user's alarms, newest first.
func (h *Handlers) ListAlarms(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	p := parsePagination(r)
	ctx := r.Context()
	result, err := h.db.ListAlarmsByUser(ctx, user.ID, p.Limit, p.Offset)
	if err != nil {
		slog.Error("Failed to list alarms", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to list alarms", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Subscribe opens a server-sent-events stream carrying the authenticated
// user's alarms. A new subscription replaces any previous one for the same
// user. The stream closes on client disconnect, idle timeout, or shutdown.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s := stream.New()
	h.registry.Register(user.ID, s)
	defer func() {
		h.registry.EvictStream(user.ID, s)
		s.Close()
	}()

	// Handshake frame. If this write fails the subscription never
	// existed as far as the client is concerned.
	handshake := stream.Frame{Event: stream.EventName, Data: stream.ConnectData}
	if err := stream.WriteFrame(w, handshake); err != nil {
		slog.Error("Failed to write handshake frame", "error", err, "user_id", user.ID)
		return
	}
	flusher.Flush()

	slog.Info("Alarm subscription opened", "user_id", user.ID)

	timeout := time.NewTimer(h.streamTTL)
	defer timeout.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("Alarm subscription closed by client", "user_id", user.ID)
			return
		case <-timeout.C:
			slog.Info("Alarm subscription timed out", "user_id", user.ID)
			return
		case <-s.Done():
			// Evicted elsewhere, usually replaced by a newer subscription.
			slog.Info("Alarm subscription superseded", "user_id", user.ID)
			return
		case frame := <-s.Frames():
			if err := stream.WriteFrame(w, frame); err != nil {
				slog.Warn("Failed to write alarm frame", "error", err, "user_id", user.ID)
				return
			}
			flusher.Flush()
		}
	}
}
