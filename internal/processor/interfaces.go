// Package processor consumes alarm events from Kafka, persists them, and
// attempts a live push before acknowledging each delivery.
package processor

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/events"
)

// MessageConsumer defines the interface for reading and acknowledging alarm
// events from Kafka. This interface allows for dependency injection and
// easier testing.
type MessageConsumer interface {
	// ReadMessage reads the next alarm event. On a deserialization failure
	// the raw message is still returned so the caller can skip it.
	ReadMessage(ctx context.Context) (*events.AlarmEvent, *kafka.Message, error)

	// CommitMessage acknowledges the message, advancing the committed offset.
	CommitMessage(ctx context.Context, msg *kafka.Message) error

	// Close gracefully closes the consumer and releases resources.
	Close() error
}

// AlarmStore defines the persistence operation the processor needs.
type AlarmStore interface {
	CreateAlarm(ctx context.Context, userID int64, alarmType events.AlarmType, args events.AlarmArgs) (*database.Alarm, error)
}

// AlarmDeliverer defines the live push operation the processor needs.
type AlarmDeliverer interface {
	// Deliver pushes one alarm frame to the recipient's live stream.
	// Returns stream.ErrNoStream when the recipient is not connected here.
	Deliver(alarmID, userID int64) error
}
