package metrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// metricsKey is the Redis key the collector writes snapshots to.
	metricsKey = "metrics:alarm-pipeline"
	// metricsTTL is how long a snapshot stays in Redis if not refreshed.
	metricsTTL = 2 * time.Minute
	// DefaultReportInterval is the default interval for writing snapshots.
	DefaultReportInterval = 30 * time.Second
)

// Snapshot holds the pipeline counters written to Redis.
type Snapshot struct {
	StartedAt   time.Time `json:"started_at"`
	LastUpdated time.Time `json:"last_updated"`

	EnvelopesConsumed uint64 `json:"envelopes_consumed"`
	AlarmsPersisted   uint64 `json:"alarms_persisted"`
	AlarmsPushed      uint64 `json:"alarms_pushed"`
	PushNoTarget      uint64 `json:"push_no_target"`
	DeliveryErrors    uint64 `json:"delivery_errors"`
	ProcessingErrors  uint64 `json:"processing_errors"`

	AvgPersistLatencyNs float64 `json:"avg_persist_latency_ns"`
}

// Collector is a Redis-backed Recorder. Counters are updated atomically and
// reported on a fixed interval.
type Collector struct {
	redis          *redis.Client
	startedAt      time.Time
	reportInterval time.Duration

	consumed       atomic.Uint64
	persisted      atomic.Uint64
	pushed         atomic.Uint64
	noTarget       atomic.Uint64
	deliveryErrors atomic.Uint64
	errors         atomic.Uint64

	totalLatencyNs atomic.Uint64
	latencyCount   atomic.Uint64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewCollector creates a new metrics collector writing to redisClient.
func NewCollector(redisClient *redis.Client) *Collector {
	return &Collector{
		redis:          redisClient,
		startedAt:      time.Now().UTC(),
		reportInterval: DefaultReportInterval,
		stopCh:         make(chan struct{}),
	}
}

// SetReportInterval sets the interval for writing snapshots to Redis.
func (c *Collector) SetReportInterval(interval time.Duration) {
	c.reportInterval = interval
}

// Start begins the periodic snapshot reporting to Redis.
func (c *Collector) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.reportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.writeSnapshot(context.Background()) // Final write
				return
			case <-c.stopCh:
				c.writeSnapshot(context.Background()) // Final write
				return
			case <-ticker.C:
				c.writeSnapshot(ctx)
			}
		}
	}()
}

// Stop stops the snapshot reporting.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	c.wg.Wait()
}

func (c *Collector) RecordConsumed() {
	c.consumed.Add(1)
}

func (c *Collector) RecordPersisted(latency time.Duration) {
	c.persisted.Add(1)
	c.totalLatencyNs.Add(uint64(latency.Nanoseconds()))
	c.latencyCount.Add(1)
}

func (c *Collector) RecordPushed() {
	c.pushed.Add(1)
}

func (c *Collector) RecordNoTarget() {
	c.noTarget.Add(1)
}

func (c *Collector) RecordDeliveryError() {
	c.deliveryErrors.Add(1)
}

func (c *Collector) RecordError() {
	c.errors.Add(1)
}

// GetSnapshot returns the current counters without writing to Redis.
func (c *Collector) GetSnapshot() *Snapshot {
	var avgLatencyNs float64
	if count := c.latencyCount.Load(); count > 0 {
		avgLatencyNs = float64(c.totalLatencyNs.Load()) / float64(count)
	}

	return &Snapshot{
		StartedAt:           c.startedAt,
		LastUpdated:         time.Now().UTC(),
		EnvelopesConsumed:   c.consumed.Load(),
		AlarmsPersisted:     c.persisted.Load(),
		AlarmsPushed:        c.pushed.Load(),
		PushNoTarget:        c.noTarget.Load(),
		DeliveryErrors:      c.deliveryErrors.Load(),
		ProcessingErrors:    c.errors.Load(),
		AvgPersistLatencyNs: avgLatencyNs,
	}
}

func (c *Collector) writeSnapshot(ctx context.Context) {
	snapshot := c.GetSnapshot()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("Failed to marshal metrics snapshot", "error", err)
		return
	}

	if err := c.redis.Set(ctx, metricsKey, payload, metricsTTL).Err(); err != nil {
		slog.Warn("Failed to write metrics snapshot to Redis", "error", err)
		return
	}
}

// Ensure Collector implements Recorder
var _ Recorder = (*Collector)(nil)
