// Package cache provides a Redis-backed read-through cache for user rows.
// Users are looked up by name on every authenticated request, so cache
// hits keep the hot path off Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/junthetechguy/sns-demo/internal/database"
)

// userTTL is how long a cached user entry stays valid.
const userTTL = 3 * 24 * time.Hour

// UserCache caches users by name in Redis. A nil client disables caching,
// every lookup then misses and writes are no-ops.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a user cache backed by the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

func userKey(userName string) string {
	return "user:" + userName
}

// cachedUser is the Redis value. The password hash is carried separately
// because User never marshals it, and login needs it for the bcrypt compare.
type cachedUser struct {
	User         *database.User `json:"user"`
	PasswordHash string         `json:"password_hash"`
}

// GetUser returns the cached user for userName, or (nil, nil) on a miss.
func (c *UserCache) GetUser(ctx context.Context, userName string) (*database.User, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, userKey(userName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user from cache: %w", err)
	}

	var entry cachedUser
	if err := json.Unmarshal(data, &entry); err != nil || entry.User == nil {
		// A corrupt entry is treated as a miss so the caller falls
		// back to the database and overwrites it.
		slog.Warn("Dropping corrupt user cache entry", "user_name", userName, "error", err)
		c.client.Del(ctx, userKey(userName))
		return nil, nil
	}
	entry.User.Password = entry.PasswordHash
	return entry.User, nil
}

// SetUser stores a user in the cache.
func (c *UserCache) SetUser(ctx context.Context, user *database.User) error {
	if c.client == nil || user == nil {
		return nil
	}

	data, err := json.Marshal(cachedUser{User: user, PasswordHash: user.Password})
	if err != nil {
		return fmt.Errorf("failed to marshal user for cache: %w", err)
	}
	if err := c.client.Set(ctx, userKey(user.UserName), data, userTTL).Err(); err != nil {
		return fmt.Errorf("failed to write user to cache: %w", err)
	}
	return nil
}
