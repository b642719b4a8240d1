package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Comment represents a comment record in the database.
type Comment struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	PostID       int64      `json:"post_id"`
	Comment      string     `json:"comment"`
	RegisteredAt time.Time  `json:"registered_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// CommentListResult holds a page of comments plus the total count.
type CommentListResult struct {
	Comments []*Comment `json:"comments"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// CreateComment inserts a new comment on a post.
func (db *DB) CreateComment(ctx context.Context, userID, postID int64, comment string) (*Comment, error) {
	query := `
		INSERT INTO comments (user_id, post_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, post_id, comment, registered_at, updated_at
	`
	var c Comment
	var updatedAt sql.NullTime
	err := db.conn.QueryRowContext(ctx, query, userID, postID, comment).Scan(
		&c.ID, &c.UserID, &c.PostID, &c.Comment, &c.RegisteredAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	return &c, nil
}

// ListCommentsByPost retrieves a page of active comments for a post, oldest first.
func (db *DB) ListCommentsByPost(ctx context.Context, postID int64, limit, offset int) (*CommentListResult, error) {
	query := `
		SELECT id, user_id, post_id, comment, registered_at, updated_at
		FROM comments
		WHERE post_id = $1 AND deleted_at IS NULL
		ORDER BY registered_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.conn.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		var c Comment
		var updatedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Comment, &c.RegisteredAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if updatedAt.Valid {
			c.UpdatedAt = &updatedAt.Time
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM comments WHERE post_id = $1 AND deleted_at IS NULL`
	if err := db.conn.QueryRowContext(ctx, countQuery, postID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return &CommentListResult{Comments: comments, Total: total, Limit: limit, Offset: offset}, nil
}
