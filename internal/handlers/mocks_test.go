// Package handlers provides test mocks for handler dependencies.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/events"
)

// Error constructors mirroring the strings the real store returns.

func errNotFound(resource, name string) error {
	return fmt.Errorf("%s not found: %s", resource, name)
}

func errNotFoundID(resource string, id int64) error {
	return fmt.Errorf("%s not found: %d", resource, id)
}

func errAlreadyExists(resource, name string) error {
	return fmt.Errorf("%s already exists: %s", resource, name)
}

func errAlreadyLiked(userID, postID int64) error {
	return fmt.Errorf("already liked: user %d post %d", userID, postID)
}

// mockRepository implements Repository interface for testing.
type mockRepository struct {
	// Callbacks for each method (set these to control behavior)
	CreateUserFn         func(ctx context.Context, userName, passwordHash string) (*database.User, error)
	GetUserByNameFn      func(ctx context.Context, userName string) (*database.User, error)
	GetUserByIDFn        func(ctx context.Context, userID int64) (*database.User, error)
	CreatePostFn         func(ctx context.Context, title, body string, userID int64) (*database.Post, error)
	GetPostFn            func(ctx context.Context, postID int64) (*database.Post, error)
	UpdatePostFn         func(ctx context.Context, postID int64, title, body string) (*database.Post, error)
	DeletePostFn         func(ctx context.Context, postID int64) error
	ListPostsFn          func(ctx context.Context, limit, offset int) (*database.PostListResult, error)
	ListPostsByUserFn    func(ctx context.Context, userID int64, limit, offset int) (*database.PostListResult, error)
	CreateCommentFn      func(ctx context.Context, userID, postID int64, comment string) (*database.Comment, error)
	ListCommentsByPostFn func(ctx context.Context, postID int64, limit, offset int) (*database.CommentListResult, error)
	CreateLikeFn         func(ctx context.Context, userID, postID int64) error
	CountLikesFn         func(ctx context.Context, postID int64) (int64, error)
	ListAlarmsByUserFn   func(ctx context.Context, userID int64, limit, offset int) (*database.AlarmListResult, error)
}

func (m *mockRepository) CreateUser(ctx context.Context, userName, passwordHash string) (*database.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, userName, passwordHash)
	}
	return &database.User{ID: 1, UserName: userName, Password: passwordHash, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) GetUserByName(ctx context.Context, userName string) (*database.User, error) {
	if m.GetUserByNameFn != nil {
		return m.GetUserByNameFn(ctx, userName)
	}
	return &database.User{ID: 1, UserName: userName, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) GetUserByID(ctx context.Context, userID int64) (*database.User, error) {
	if m.GetUserByIDFn != nil {
		return m.GetUserByIDFn(ctx, userID)
	}
	return &database.User{ID: userID, UserName: "test-user", RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) CreatePost(ctx context.Context, title, body string, userID int64) (*database.Post, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, title, body, userID)
	}
	return &database.Post{ID: 1, Title: title, Body: body, UserID: userID, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) GetPost(ctx context.Context, postID int64) (*database.Post, error) {
	if m.GetPostFn != nil {
		return m.GetPostFn(ctx, postID)
	}
	return &database.Post{ID: postID, Title: "title", Body: "body", UserID: 1, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) UpdatePost(ctx context.Context, postID int64, title, body string) (*database.Post, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, postID, title, body)
	}
	return &database.Post{ID: postID, Title: title, Body: body, UserID: 1, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) DeletePost(ctx context.Context, postID int64) error {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, postID)
	}
	return nil
}

func (m *mockRepository) ListPosts(ctx context.Context, limit, offset int) (*database.PostListResult, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, limit, offset)
	}
	return &database.PostListResult{Posts: []*database.Post{}, Total: 0, Limit: limit, Offset: offset}, nil
}

func (m *mockRepository) ListPostsByUser(ctx context.Context, userID int64, limit, offset int) (*database.PostListResult, error) {
	if m.ListPostsByUserFn != nil {
		return m.ListPostsByUserFn(ctx, userID, limit, offset)
	}
	return &database.PostListResult{Posts: []*database.Post{}, Total: 0, Limit: limit, Offset: offset}, nil
}

func (m *mockRepository) CreateComment(ctx context.Context, userID, postID int64, comment string) (*database.Comment, error) {
	if m.CreateCommentFn != nil {
		return m.CreateCommentFn(ctx, userID, postID, comment)
	}
	return &database.Comment{ID: 1, UserID: userID, PostID: postID, Comment: comment, RegisteredAt: time.Now()}, nil
}

func (m *mockRepository) ListCommentsByPost(ctx context.Context, postID int64, limit, offset int) (*database.CommentListResult, error) {
	if m.ListCommentsByPostFn != nil {
		return m.ListCommentsByPostFn(ctx, postID, limit, offset)
	}
	return &database.CommentListResult{Comments: []*database.Comment{}, Total: 0, Limit: limit, Offset: offset}, nil
}

func (m *mockRepository) CreateLike(ctx context.Context, userID, postID int64) error {
	if m.CreateLikeFn != nil {
		return m.CreateLikeFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockRepository) CountLikes(ctx context.Context, postID int64) (int64, error) {
	if m.CountLikesFn != nil {
		return m.CountLikesFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockRepository) ListAlarmsByUser(ctx context.Context, userID int64, limit, offset int) (*database.AlarmListResult, error) {
	if m.ListAlarmsByUserFn != nil {
		return m.ListAlarmsByUserFn(ctx, userID, limit, offset)
	}
	return &database.AlarmListResult{Alarms: []*database.Alarm{}, Total: 0, Limit: limit, Offset: offset}, nil
}

// mockPublisher implements AlarmPublisher for testing.
type mockPublisher struct {
	PublishFn func(ctx context.Context, event *events.AlarmEvent) error
	published []*events.AlarmEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event *events.AlarmEvent) error {
	m.published = append(m.published, event)
	if m.PublishFn != nil {
		return m.PublishFn(ctx, event)
	}
	return nil
}

func (m *mockPublisher) Close() error {
	return nil
}

// mockUserCache implements UserCache for testing.
type mockUserCache struct {
	GetUserFn func(ctx context.Context, userName string) (*database.User, error)
	stored    []*database.User
}

func (m *mockUserCache) GetUser(ctx context.Context, userName string) (*database.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userName)
	}
	return nil, nil
}

func (m *mockUserCache) SetUser(ctx context.Context, user *database.User) error {
	m.stored = append(m.stored, user)
	return nil
}
