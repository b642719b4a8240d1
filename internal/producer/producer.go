// Package producer provides Kafka producer functionality for the alarm topic.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/junthetechguy/sns-demo/internal/events"
	"github.com/junthetechguy/sns-demo/pkg/kafkautil"
)

// Producer wraps a Kafka writer and provides a simple interface for
// publishing alarm events. The hand-off is synchronous up to the broker ack
// only; callers do not wait for the alarm to be persisted or pushed.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer with the specified brokers and topic.
// The producer is configured for at-least-once delivery semantics with synchronous writes.
func NewProducer(brokers string, topic string) (*Producer, error) {
	if err := kafkautil.ValidateProducerParams(brokers, topic); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka producer",
		"brokers", brokerList,
		"topic", topic,
	)

	// Configure Kafka writer for at-least-once delivery.
	// The Hash balancer keys partitions by receiver user id so alarms for one
	// recipient stay ordered.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: kafkautil.WriteTimeout,
		RequiredAcks: kafka.RequireOne, // At-least-once semantics (waits for leader ack)
		Async:        false,            // Synchronous writes for reliability and error handling
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}, nil
}

// Publish serializes an alarm event to JSON and publishes it to Kafka keyed
// by the receiver user id. Returns an error if serialization or publishing
// fails; the caller's own action is not rolled back on failure.
func (p *Producer) Publish(ctx context.Context, event *events.AlarmEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal alarm event to JSON",
			"receiver_user_id", event.ReceiverUserID,
			"alarm_type", event.Type,
			"error", err,
		)
		return fmt.Errorf("failed to marshal alarm event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ReceiverUserID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{
				Key:   "schema_version",
				Value: []byte(strconv.Itoa(event.SchemaVersion)),
			},
			{
				Key:   "alarm_type",
				Value: []byte(event.Type),
			},
		},
	}

	// Write to Kafka (synchronous, waits for ack)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write message to Kafka",
			"receiver_user_id", event.ReceiverUserID,
			"topic", p.topic,
			"error", err,
		)
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	slog.Info("Published alarm event",
		"receiver_user_id", event.ReceiverUserID,
		"alarm_type", event.Type,
		"from_user_id", event.Args.FromUserID,
		"target_id", event.Args.TargetID,
	)

	return nil
}

// Close gracefully closes the Kafka writer and releases resources.
func (p *Producer) Close() error {
	slog.Info("Closing Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		slog.Error("Error closing Kafka producer", "error", err)
		return err
	}
	return nil
}
