package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Post represents a post record in the database.
type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	UserID       int64      `json:"user_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// PostListResult holds a page of posts plus the total count of active rows.
type PostListResult struct {
	Posts  []*Post `json:"posts"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// CreatePost inserts a new post owned by userID.
func (db *DB) CreatePost(ctx context.Context, title, body string, userID int64) (*Post, error) {
	query := `
		INSERT INTO posts (title, body, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, body, user_id, registered_at, updated_at
	`
	return scanPost(db.conn.QueryRowContext(ctx, query, title, body, userID))
}

// GetPost retrieves an active post by ID.
func (db *DB) GetPost(ctx context.Context, postID int64) (*Post, error) {
	query := `
		SELECT id, title, body, user_id, registered_at, updated_at
		FROM posts
		WHERE id = $1 AND deleted_at IS NULL
	`
	post, err := scanPost(db.conn.QueryRowContext(ctx, query, postID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post not found: %d", postID)
	}
	return post, err
}

// UpdatePost updates title and body of a post and stamps updated_at.
func (db *DB) UpdatePost(ctx context.Context, postID int64, title, body string) (*Post, error) {
	query := `
		UPDATE posts
		SET title = $2, body = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, title, body, user_id, registered_at, updated_at
	`
	post, err := scanPost(db.conn.QueryRowContext(ctx, query, postID, title, body))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post not found: %d", postID)
	}
	return post, err
}

// DeletePost soft-deletes a post together with its likes, comments, and the
// alarms that refer to it. All marks happen in one transaction so readers
// never observe a half-deleted post.
func (db *DB) DeletePost(ctx context.Context, postID int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE posts SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post not found: %d", postID)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE likes SET deleted_at = now() WHERE post_id = $1 AND deleted_at IS NULL`, postID); err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE comments SET deleted_at = now() WHERE post_id = $1 AND deleted_at IS NULL`, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE alarms SET deleted_at = now() WHERE (args->>'target_id')::bigint = $1 AND deleted_at IS NULL`, postID); err != nil {
		return fmt.Errorf("failed to delete alarms: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPosts retrieves a page of active posts, newest first.
func (db *DB) ListPosts(ctx context.Context, limit, offset int) (*PostListResult, error) {
	return db.listPosts(ctx, `
		SELECT id, title, body, user_id, registered_at, updated_at
		FROM posts
		WHERE deleted_at IS NULL
		ORDER BY registered_at DESC
		LIMIT $1 OFFSET $2
	`, `SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL`,
		[]interface{}{limit, offset}, []interface{}{}, limit, offset)
}

// ListPostsByUser retrieves a page of active posts owned by userID, newest first.
func (db *DB) ListPostsByUser(ctx context.Context, userID int64, limit, offset int) (*PostListResult, error) {
	return db.listPosts(ctx, `
		SELECT id, title, body, user_id, registered_at, updated_at
		FROM posts
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY registered_at DESC
		LIMIT $2 OFFSET $3
	`, `SELECT COUNT(*) FROM posts WHERE user_id = $1 AND deleted_at IS NULL`,
		[]interface{}{userID, limit, offset}, []interface{}{userID}, limit, offset)
}

func (db *DB) listPosts(ctx context.Context, query, countQuery string, args, countArgs []interface{}, limit, offset int) (*PostListResult, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		var post Post
		var updatedAt sql.NullTime
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.UserID, &post.RegisteredAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if updatedAt.Valid {
			post.UpdatedAt = &updatedAt.Time
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return &PostListResult{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

func scanPost(row *sql.Row) (*Post, error) {
	var post Post
	var updatedAt sql.NullTime
	err := row.Scan(&post.ID, &post.Title, &post.Body, &post.UserID, &post.RegisteredAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	return &post, nil
}
