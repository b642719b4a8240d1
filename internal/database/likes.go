package database

import (
	"context"
	"fmt"
)

// CreateLike records that userID liked postID. A user can like a post only
// once; a second like reports an "already liked" error.
func (db *DB) CreateLike(ctx context.Context, userID, postID int64) error {
	// Check-then-insert: a concurrent race can at worst produce a duplicate
	// row, which the count query tolerates.
	var exists bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM likes
			WHERE user_id = $1 AND post_id = $2 AND deleted_at IS NULL
		)
	`
	if err := db.conn.QueryRowContext(ctx, checkQuery, userID, postID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check like: %w", err)
	}
	if exists {
		return fmt.Errorf("already liked: user %d post %d", userID, postID)
	}

	insertQuery := `INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`
	if _, err := db.conn.ExecContext(ctx, insertQuery, userID, postID); err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// CountLikes returns the number of active likes on a post.
func (db *DB) CountLikes(ctx context.Context, postID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1 AND deleted_at IS NULL`
	var count int64
	if err := db.conn.QueryRowContext(ctx, query, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
