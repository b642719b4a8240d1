package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// User represents a user record in the database. Password holds the bcrypt
// hash, never the plain text.
type User struct {
	ID           int64      `json:"id"`
	UserName     string     `json:"user_name"`
	Password     string     `json:"-"`
	RegisteredAt time.Time  `json:"registered_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// CreateUser inserts a new user with the given name and password hash.
func (db *DB) CreateUser(ctx context.Context, userName, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (user_name, password)
		VALUES ($1, $2)
		RETURNING id, user_name, password, registered_at, updated_at
	`
	var user User
	var updatedAt sql.NullTime
	err := db.conn.QueryRowContext(ctx, query, userName, passwordHash).Scan(
		&user.ID,
		&user.UserName,
		&user.Password,
		&user.RegisteredAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user already exists: %s", userName)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}
	return &user, nil
}

// GetUserByName retrieves an active user by name.
func (db *DB) GetUserByName(ctx context.Context, userName string) (*User, error) {
	query := `
		SELECT id, user_name, password, registered_at, updated_at
		FROM users
		WHERE user_name = $1 AND deleted_at IS NULL
	`
	return db.scanUser(db.conn.QueryRowContext(ctx, query, userName), userName)
}

// GetUserByID retrieves an active user by ID.
func (db *DB) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT id, user_name, password, registered_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return db.scanUser(db.conn.QueryRowContext(ctx, query, userID), fmt.Sprintf("%d", userID))
}

func (db *DB) scanUser(row *sql.Row, ref string) (*User, error) {
	var user User
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.Password,
		&user.RegisteredAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %s", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}
	return &user, nil
}
