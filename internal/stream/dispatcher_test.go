package stream

import (
	"errors"
	"testing"
)

func TestDispatcher_Deliver(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)

	s := New()
	r.Register(42, s)

	if err := d.Deliver(7, 42); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	select {
	case frame := <-s.Frames():
		if frame.ID != "7" {
			t.Errorf("frame.ID = %q, want %q", frame.ID, "7")
		}
		if frame.Event != EventName {
			t.Errorf("frame.Event = %q, want %q", frame.Event, EventName)
		}
		if frame.Data != AlarmData {
			t.Errorf("frame.Data = %q, want %q", frame.Data, AlarmData)
		}
	default:
		t.Fatal("no frame delivered to the stream")
	}
}

func TestDispatcher_DeliverNoStream(t *testing.T) {
	d := NewDispatcher(NewRegistry())

	err := d.Deliver(7, 42)
	if !errors.Is(err, ErrNoStream) {
		t.Errorf("Deliver() error = %v, want ErrNoStream", err)
	}
}

func TestDispatcher_DeliverDeadStreamSelfHeals(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)

	s := New()
	r.Register(42, s)
	s.Close() // remote end is gone

	err := d.Deliver(7, 42)
	if err == nil || errors.Is(err, ErrNoStream) {
		t.Fatalf("Deliver() error = %v, want a delivery error", err)
	}

	// The dead stream must be evicted so the next lookup finds nothing.
	if _, ok := r.Lookup(42); ok {
		t.Error("Lookup() still finds the dead stream after a failed delivery")
	}
}

func TestDispatcher_DeliverNeverReachesReplacedStream(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)

	h1 := New()
	h2 := New()
	r.Register(42, h1)
	r.Register(42, h2)

	if err := d.Deliver(7, 42); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	select {
	case <-h1.Frames():
		t.Error("delivery reached the replaced stream")
	default:
	}

	select {
	case <-h2.Frames():
	default:
		t.Error("delivery did not reach the active stream")
	}
}
