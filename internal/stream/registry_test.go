package stream

import (
	"sync"
	"testing"
)

func TestRegistry_RegisterReplacesPriorStream(t *testing.T) {
	r := NewRegistry()

	h1 := New()
	h2 := New()

	r.Register(42, h1)
	r.Register(42, h2)

	got, ok := r.Lookup(42)
	if !ok {
		t.Fatal("Lookup() found nothing after Register()")
	}
	if got != h2 {
		t.Error("Lookup() returned the replaced stream, want the newest one")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup(42); ok {
		t.Error("Lookup() reported a stream for an unknown user")
	}
}

func TestRegistry_EvictIsIdempotent(t *testing.T) {
	r := NewRegistry()

	// Evicting a user with no stream must be a no-op.
	r.Evict(42)

	r.Register(42, New())
	r.Evict(42)
	r.Evict(42)

	if _, ok := r.Lookup(42); ok {
		t.Error("Lookup() found a stream after Evict()")
	}
}

func TestRegistry_EvictStreamKeepsReplacement(t *testing.T) {
	r := NewRegistry()

	h1 := New()
	h2 := New()

	r.Register(42, h1)
	r.Register(42, h2)

	// Stale connection teardown must not drop the replacement.
	r.EvictStream(42, h1)

	got, ok := r.Lookup(42)
	if !ok || got != h2 {
		t.Error("EvictStream() with a stale stream removed the active one")
	}

	r.EvictStream(42, h2)
	if _, ok := r.Lookup(42); ok {
		t.Error("EvictStream() with the active stream should remove it")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		userID := int64(i % 10)
		wg.Add(3)
		go func() {
			defer wg.Done()
			r.Register(userID, New())
		}()
		go func() {
			defer wg.Done()
			r.Lookup(userID)
		}()
		go func() {
			defer wg.Done()
			r.Evict(userID)
		}()
	}
	wg.Wait()
}
