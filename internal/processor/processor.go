package processor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/junthetechguy/sns-demo/internal/events"
	"github.com/junthetechguy/sns-demo/internal/metrics"
	"github.com/junthetechguy/sns-demo/internal/stream"
)

// Processor runs the alarm consumption loop. Envelopes are processed one at a
// time so that per-recipient Kafka key ordering carries through to the store.
type Processor struct {
	consumer   MessageConsumer
	store      AlarmStore
	dispatcher AlarmDeliverer
	metrics    metrics.Recorder
}

// Option is a functional option for configuring the Processor.
type Option func(*Processor)

// WithMetrics sets a custom metrics recorder.
func WithMetrics(m metrics.Recorder) Option {
	return func(p *Processor) {
		if m != nil {
			p.metrics = m
		}
	}
}

// New creates a processor. Metrics default to a no-op recorder.
func New(consumer MessageConsumer, store AlarmStore, dispatcher AlarmDeliverer, opts ...Option) *Processor {
	p := &Processor{
		consumer:   consumer,
		store:      store,
		dispatcher: dispatcher,
		metrics:    metrics.NewNoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads alarm events until ctx is cancelled. For each event it persists
// an alarm record, attempts a live push, and only then commits the offset. A
// persistence failure leaves the offset uncommitted so the broker redelivers;
// the resulting duplicate alarm row is accepted. An envelope in flight at
// shutdown is likewise redelivered on restart.
func (p *Processor) Run(ctx context.Context) error {
	slog.Info("Starting alarm processing loop")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alarm processing loop stopped")
			return nil
		default:
		}

		event, msg, err := p.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Alarm processing loop stopped")
				return nil
			}
			if msg != nil {
				// Undecodable envelope: it can never succeed, so skip it
				// instead of forcing an endless redelivery loop.
				slog.Error("Skipping undecodable alarm event", "error", err,
					"partition", msg.Partition, "offset", msg.Offset)
				p.metrics.RecordError()
				p.commit(ctx, msg)
				continue
			}
			slog.Error("Failed to read alarm event", "error", err)
			p.metrics.RecordError()
			continue
		}

		p.metrics.RecordConsumed()
		if p.processOne(ctx, event) {
			p.commit(ctx, msg)
		}
	}
}

// processOne persists and pushes one alarm event. It reports whether the
// delivery may be acknowledged: false only when persistence failed.
func (p *Processor) processOne(ctx context.Context, event *events.AlarmEvent) bool {
	startTime := time.Now()

	alarm, err := p.store.CreateAlarm(ctx, event.ReceiverUserID, event.Type, event.Args)
	if err != nil {
		// Do not commit: the broker must redeliver this envelope.
		slog.Error("Failed to persist alarm",
			"receiver_user_id", event.ReceiverUserID,
			"alarm_type", event.Type,
			"error", err,
		)
		p.metrics.RecordError()
		return false
	}
	p.metrics.RecordPersisted(time.Since(startTime))

	// A missing or dead stream is expected churn, never a processing failure:
	// the alarm is already durable and must be acknowledged either way.
	switch err := p.dispatcher.Deliver(alarm.ID, event.ReceiverUserID); {
	case err == nil:
		p.metrics.RecordPushed()
		slog.Info("Pushed alarm to live stream",
			"alarm_id", alarm.ID,
			"receiver_user_id", event.ReceiverUserID,
		)
	case errors.Is(err, stream.ErrNoStream):
		p.metrics.RecordNoTarget()
	default:
		p.metrics.RecordDeliveryError()
		slog.Warn("Failed to push alarm to live stream",
			"alarm_id", alarm.ID,
			"receiver_user_id", event.ReceiverUserID,
			"error", err,
		)
	}

	return true
}

// commit acknowledges the message. A commit failure is logged only: the
// envelope was fully processed, and the redelivery it causes is tolerated.
func (p *Processor) commit(ctx context.Context, msg *kafka.Message) {
	if err := p.consumer.CommitMessage(ctx, msg); err != nil {
		slog.Error("Failed to commit offset", "error", err,
			"partition", msg.Partition, "offset", msg.Offset)
	}
}
