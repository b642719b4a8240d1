// Package metrics provides metrics recording for the alarm pipeline. It uses
// the null object pattern to avoid nil checks throughout the codebase;
// snapshots are periodically written to Redis for external inspection.
package metrics

import "time"

// Recorder defines the interface for recording pipeline metrics.
type Recorder interface {
	// RecordConsumed increments the count of envelopes read from Kafka.
	RecordConsumed()

	// RecordPersisted records a successfully persisted alarm with its
	// end-to-end processing latency.
	RecordPersisted(latency time.Duration)

	// RecordPushed increments the count of alarms pushed to a live stream.
	RecordPushed()

	// RecordNoTarget increments the count of pushes that found no live stream.
	RecordNoTarget()

	// RecordDeliveryError increments the count of dead-stream delivery failures.
	RecordDeliveryError()

	// RecordError increments the processing error counter.
	RecordError()
}

// NoOp is a no-op implementation of Recorder that discards all metrics.
// Use this when metrics collection is not configured.
type NoOp struct{}

// NewNoOp creates a new no-op metrics recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

func (n *NoOp) RecordConsumed()                  {}
func (n *NoOp) RecordPersisted(_ time.Duration)  {}
func (n *NoOp) RecordPushed()                    {}
func (n *NoOp) RecordNoTarget()                  {}
func (n *NoOp) RecordDeliveryError()             {}
func (n *NoOp) RecordError()                     {}

// Ensure NoOp implements Recorder
var _ Recorder = (*NoOp)(nil)
