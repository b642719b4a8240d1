package stream

import (
	"log/slog"
	"sync"
)

// Registry maps a user ID to their single live stream. It is the only shared
// mutable state in the push path and is safe for concurrent use by the
// subscribe handler, the dispatcher, and connection teardown.
//
// The registry has no visibility across process instances: a push for a user
// connected elsewhere finds nothing here and counts as no-target.
type Registry struct {
	mu      sync.RWMutex
	streams map[int64]*Stream
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		streams: make(map[int64]*Stream),
	}
}

// Register stores the stream for userID, unconditionally replacing any prior
// stream. The prior stream is not closed; its own serve loop tears it down.
func (r *Registry) Register(userID int64, s *Stream) *Stream {
	r.mu.Lock()
	r.streams[userID] = s
	r.mu.Unlock()
	slog.Info("Registered alarm stream", "user_id", userID)
	return s
}

// Lookup returns the currently registered stream for userID. A missing entry
// is a normal state, not an error.
func (r *Registry) Lookup(userID int64) (*Stream, bool) {
	r.mu.RLock()
	s, ok := r.streams[userID]
	r.mu.RUnlock()
	return s, ok
}

// Evict removes any stream registered for userID. Calling it when none is
// registered is a no-op.
func (r *Registry) Evict(userID int64) {
	r.mu.Lock()
	delete(r.streams, userID)
	r.mu.Unlock()
}

// EvictStream removes the entry for userID only if s is still the registered
// stream. Terminal connection events use this so a stale connection's cleanup
// never drops a replacement that registered in the meantime.
func (r *Registry) EvictStream(userID int64, s *Stream) {
	r.mu.Lock()
	if cur, ok := r.streams[userID]; ok && cur == s {
		delete(r.streams, userID)
	}
	r.mu.Unlock()
}

// Len returns the number of registered streams.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}
