// Package handlers provides HTTP handlers for the social feed API.
package handlers

import (
	"context"

	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/events"
)

// AlarmPublisher defines the interface for publishing alarm events to Kafka.
// This interface allows for dependency injection and easier testing.
type AlarmPublisher interface {
	// Publish sends an alarm event to Kafka.
	// Returns an error if serialization or publishing fails.
	Publish(ctx context.Context, event *events.AlarmEvent) error

	// Close gracefully closes the publisher and releases resources.
	Close() error
}

// Repository defines the interface for database operations.
// This allows handlers to be tested without a real database.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, userName, passwordHash string) (*database.User, error)
	GetUserByName(ctx context.Context, userName string) (*database.User, error)
	GetUserByID(ctx context.Context, userID int64) (*database.User, error)

	// Post operations
	CreatePost(ctx context.Context, title, body string, userID int64) (*database.Post, error)
	GetPost(ctx context.Context, postID int64) (*database.Post, error)
	UpdatePost(ctx context.Context, postID int64, title, body string) (*database.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	ListPosts(ctx context.Context, limit, offset int) (*database.PostListResult, error)
	ListPostsByUser(ctx context.Context, userID int64, limit, offset int) (*database.PostListResult, error)

	// Comment operations
	CreateComment(ctx context.Context, userID, postID int64, comment string) (*database.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64, limit, offset int) (*database.CommentListResult, error)

	// Like operations
	CreateLike(ctx context.Context, userID, postID int64) error
	CountLikes(ctx context.Context, postID int64) (int64, error)

	// Alarm operations
	ListAlarmsByUser(ctx context.Context, userID int64, limit, offset int) (*database.AlarmListResult, error)
}

// UserCache defines the read-through cache used for user lookups.
type UserCache interface {
	GetUser(ctx context.Context, userName string) (*database.User, error)
	SetUser(ctx context.Context, user *database.User) error
}
