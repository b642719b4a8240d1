// Package consumer provides Kafka consumer functionality for the alarm topic.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/junthetechguy/sns-demo/internal/events"
	"github.com/junthetechguy/sns-demo/pkg/kafkautil"
)

// Consumer wraps a Kafka reader and provides a simple interface for consuming
// alarm events with explicit acknowledgment.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

// NewConsumer creates a new Kafka consumer with the specified brokers, topic,
// and group ID. The consumer is configured for at-least-once delivery:
// offsets advance only when CommitMessage is called.
func NewConsumer(brokers string, topic string, groupID string) (*Consumer, error) {
	if err := kafkautil.ValidateConsumerParams(brokers, topic, groupID); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka consumer",
		"brokers", brokerList,
		"topic", topic,
		"group_id", groupID,
	)

	reader := kafka.NewReader(kafkautil.NewReaderConfig(brokerList, topic, groupID))

	return &Consumer{
		reader: reader,
		topic:  topic,
	}, nil
}

// ReadMessage reads the next message from Kafka and deserializes it as an
// AlarmEvent. Returns an error if reading or deserialization fails; on a
// deserialization error the raw message is returned so the caller can decide
// whether to skip it.
func (c *Consumer) ReadMessage(ctx context.Context) (*events.AlarmEvent, *kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read message from Kafka: %w", err)
	}

	var event events.AlarmEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, &msg, fmt.Errorf("failed to unmarshal alarm event: %w", err)
	}

	return &event, &msg, nil
}

// CommitMessage commits the offset for the given message. This must be called
// only after the alarm has been persisted; a crash before commit causes the
// broker to redeliver.
func (c *Consumer) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	return c.reader.CommitMessages(ctx, *msg)
}

// Close gracefully closes the Kafka reader and releases resources.
func (c *Consumer) Close() error {
	slog.Info("Closing Kafka consumer", "topic", c.topic)
	if err := c.reader.Close(); err != nil {
		slog.Error("Error closing Kafka consumer", "error", err)
		return err
	}
	return nil
}
