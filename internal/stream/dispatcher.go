package stream

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// ErrNoStream is returned by Deliver when the recipient has no live stream on
// this instance. It is an expected condition, logged at info level by the
// dispatcher; callers must not treat it as a processing failure.
var ErrNoStream = errors.New("no live stream for user")

// Dispatcher pushes one alarm frame to a recipient's live stream, if any.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher backed by the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Deliver writes one alarm frame to the stream registered for userID.
//
// If no stream is registered it returns ErrNoStream. If the write fails the
// stream is dead: it is evicted and closed, and a delivery error is returned.
// Deliver never retries and never blocks on the remote client.
func (d *Dispatcher) Deliver(alarmID, userID int64) error {
	s, ok := d.registry.Lookup(userID)
	if !ok {
		slog.Info("No alarm stream found", "user_id", userID, "alarm_id", alarmID)
		return ErrNoStream
	}

	frame := Frame{
		ID:    strconv.FormatInt(alarmID, 10),
		Event: EventName,
		Data:  AlarmData,
	}
	if err := s.Send(frame); err != nil {
		d.registry.EvictStream(userID, s)
		s.Close()
		return fmt.Errorf("failed to deliver alarm %d to user %d: %w", alarmID, userID, err)
	}
	return nil
}
