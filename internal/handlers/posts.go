package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/junthetechguy/sns-demo/internal/events"
)

// CreatePostRequest represents a request to create a post.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost creates a new post owned by the authenticated user.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	post, err := h.db.CreatePost(ctx, req.Title, req.Body, user.ID)
	if handleDBError(w, err, "post", req.Title) {
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// UpdatePostRequest represents a request to update a post.
type UpdatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UpdatePost updates a post. Only the owner may update it.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	post, err := h.db.GetPost(ctx, postID)
	if handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}
	if post.UserID != user.ID {
		http.Error(w, "Permission denied", http.StatusForbidden)
		return
	}

	updated, err := h.db.UpdatePost(ctx, postID, req.Title, req.Body)
	if handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeletePost soft-deletes a post along with its likes, comments, and alarms.
// Only the owner may delete it.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	post, err := h.db.GetPost(ctx, postID)
	if handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}
	if post.UserID != user.ID {
		http.Error(w, "Permission denied", http.StatusForbidden)
		return
	}

	if err := h.db.DeletePost(ctx, postID); err != nil {
		handleDBError(w, err, "post", r.URL.Query().Get("post_id"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPosts returns a page of all active posts, newest first.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	p := parsePagination(r)
	ctx := r.Context()
	result, err := h.db.ListPosts(ctx, p.Limit, p.Offset)
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		http.Error(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListMyPosts returns a page of the authenticated user's posts, newest first.
func (h *Handlers) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	p := parsePagination(r)
	ctx := r.Context()
	result, err := h.db.ListPostsByUser(ctx, user.ID, p.Limit, p.Offset)
	if err != nil {
		slog.Error("Failed to list posts", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// LikePost records a like on a post and enqueues an alarm for the post owner.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	post, err := h.db.GetPost(ctx, postID)
	if handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}

	if err := h.db.CreateLike(ctx, user.ID, postID); err != nil {
		handleDBError(w, err, "like", r.URL.Query().Get("post_id"))
		return
	}

	h.publishAlarm(ctx, post.UserID, events.AlarmTypeNewLike, events.AlarmArgs{
		FromUserID: user.ID,
		TargetID:   post.ID,
	})

	w.WriteHeader(http.StatusNoContent)
}

// LikeCountResponse carries the like total of a post.
type LikeCountResponse struct {
	Count int64 `json:"count"`
}

// LikeCount returns the number of likes on a post.
func (h *Handlers) LikeCount(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if _, err := h.db.GetPost(ctx, postID); handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}

	count, err := h.db.CountLikes(ctx, postID)
	if err != nil {
		slog.Error("Failed to count likes", "error", err, "post_id", postID)
		http.Error(w, "Failed to count likes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LikeCountResponse{Count: count})
}

// CreateCommentRequest represents a request to comment on a post.
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

// CreateComment adds a comment to a post and enqueues an alarm for the
// post owner.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Comment == "" {
		http.Error(w, "comment is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	post, err := h.db.GetPost(ctx, postID)
	if handleDBError(w, err, "post", r.URL.Query().Get("post_id")) {
		return
	}

	comment, err := h.db.CreateComment(ctx, user.ID, postID, req.Comment)
	if handleDBError(w, err, "comment", r.URL.Query().Get("post_id")) {
		return
	}

	h.publishAlarm(ctx, post.UserID, events.AlarmTypeNewComment, events.AlarmArgs{
		FromUserID: user.ID,
		TargetID:   post.ID,
	})

	writeJSON(w, http.StatusCreated, comment)
}

// ListComments returns a page of a post's comments, oldest first.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	postID, ok := requirePostID(w, r)
	if !ok {
		return
	}

	p := parsePagination(r)
	ctx := r.Context()
	result, err := h.db.ListCommentsByPost(ctx, postID, p.Limit, p.Offset)
	if err != nil {
		slog.Error("Failed to list comments", "error", err, "post_id", postID)
		http.Error(w, "Failed to list comments", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// publishAlarm enqueues an alarm event. Publish failures are logged and
// swallowed, the triggering action has already been committed.
func (h *Handlers) publishAlarm(ctx context.Context, receiverID int64, typ events.AlarmType, args events.AlarmArgs) {
	event := &events.AlarmEvent{
		ReceiverUserID: receiverID,
		Type:           typ,
		Args:           args,
		SchemaVersion:  events.SchemaVersion,
	}
	if err := h.producer.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish alarm event", "error", err,
			"receiver_user_id", receiverID, "alarm_type", typ)
	}
}
