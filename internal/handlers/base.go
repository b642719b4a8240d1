// Package handlers provides HTTP handlers for the social feed API.
package handlers

import (
	"time"

	"github.com/junthetechguy/sns-demo/internal/auth"
	"github.com/junthetechguy/sns-demo/internal/cache"
	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/producer"
	"github.com/junthetechguy/sns-demo/internal/stream"
)

// Handlers wraps dependencies for HTTP handlers.
type Handlers struct {
	db        Repository
	producer  AlarmPublisher
	registry  *stream.Registry
	users     UserCache
	jwtSecret string
	tokenTTL  time.Duration
	streamTTL time.Duration
}

// Option is a functional option for configuring Handlers.
type Option func(*Handlers)

// WithTokenTTL overrides the lifetime of issued JWTs.
func WithTokenTTL(ttl time.Duration) Option {
	return func(h *Handlers) {
		if ttl > 0 {
			h.tokenTTL = ttl
		}
	}
}

// WithStreamTTL overrides the idle timeout of alarm subscriptions.
func WithStreamTTL(ttl time.Duration) Option {
	return func(h *Handlers) {
		if ttl > 0 {
			h.streamTTL = ttl
		}
	}
}

// NewHandlers creates a new handlers instance. If userCache is nil, lookups
// always go to the database.
func NewHandlers(db *database.DB, prod *producer.Producer, registry *stream.Registry, userCache *cache.UserCache, jwtSecret string, opts ...Option) *Handlers {
	h := &Handlers{
		db:        db,
		producer:  prod,
		registry:  registry,
		users:     userCache,
		jwtSecret: jwtSecret,
		tokenTTL:  auth.DefaultTokenTTL,
		streamTTL: stream.DefaultTimeout,
	}
	if userCache == nil {
		h.users = cache.NewUserCache(nil)
	}

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewHandlersWithDeps creates handlers with explicit interface dependencies.
// This constructor is primarily for testing.
func NewHandlersWithDeps(db Repository, prod AlarmPublisher, registry *stream.Registry, users UserCache, jwtSecret string) *Handlers {
	if users == nil {
		users = cache.NewUserCache(nil)
	}
	return &Handlers{
		db:        db,
		producer:  prod,
		registry:  registry,
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  auth.DefaultTokenTTL,
		streamTTL: stream.DefaultTimeout,
	}
}
