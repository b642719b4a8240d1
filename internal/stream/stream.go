// Package stream implements the live alarm push path: a per-user registry of
// server-sent event streams and a dispatcher that writes alarm frames to them.
// The registry is process-local; a user connected to another instance simply
// has no stream here, which callers treat as a normal state.
package stream

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	// EventName is the SSE event type the frontend subscribes to. Both the
	// initial handshake frame and alarm frames use this name.
	EventName = "alarm"

	// ConnectData is the payload of the one-time frame sent when a stream is
	// established.
	ConnectData = "connect completed"

	// AlarmData is the payload of an alarm frame. Clients re-fetch the alarm
	// list on receipt rather than parsing a rich payload.
	AlarmData = "new alarm"

	// DefaultTimeout is how long an idle stream is held open before the
	// server tears it down. Clients reconnect with a fresh subscribe.
	DefaultTimeout = time.Hour

	// frameBuffer is the per-stream frame channel capacity. A stream whose
	// buffer is full is treated as dead and evicted.
	frameBuffer = 16
)

var (
	// ErrStreamClosed is returned by Send after the stream terminated.
	ErrStreamClosed = errors.New("stream is closed")

	// ErrStreamFull is returned by Send when the client cannot keep up.
	ErrStreamFull = errors.New("stream buffer is full")
)

// Frame is one server-sent event frame. ID carries the alarm identifier so
// clients could resume, though resumption always starts fresh in this design.
type Frame struct {
	ID    string
	Event string
	Data  string
}

// Stream is the live connection handle for one subscribed user. It is owned
// by the registry for the duration of the session; the serving goroutine
// drains Frames and writes them to the HTTP response.
type Stream struct {
	frames    chan Frame
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a stream handle ready for registration.
func New() *Stream {
	return &Stream{
		frames: make(chan Frame, frameBuffer),
		done:   make(chan struct{}),
	}
}

// Send queues a frame for delivery without blocking. It returns
// ErrStreamClosed if the stream already terminated and ErrStreamFull if the
// client is too slow to drain its buffer; the caller evicts the stream in
// both cases.
func (s *Stream) Send(f Frame) error {
	select {
	case <-s.done:
		return ErrStreamClosed
	default:
	}

	select {
	case s.frames <- f:
		return nil
	case <-s.done:
		return ErrStreamClosed
	default:
		return ErrStreamFull
	}
}

// Close marks the stream terminated. Safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Done is closed when the stream terminates.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Frames returns the channel the serving goroutine drains.
func (s *Stream) Frames() <-chan Frame {
	return s.frames
}

// WriteFrame writes one frame in text/event-stream wire format.
func WriteFrame(w io.Writer, f Frame) error {
	if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", f.ID, f.Event, f.Data); err != nil {
		return fmt.Errorf("failed to write event frame: %w", err)
	}
	return nil
}
