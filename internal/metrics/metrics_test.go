package metrics

import (
	"testing"
	"time"
)

func TestNoOp_ImplementsRecorder(t *testing.T) {
	var r Recorder = NewNoOp()

	// None of these may panic.
	r.RecordConsumed()
	r.RecordPersisted(time.Millisecond)
	r.RecordPushed()
	r.RecordNoTarget()
	r.RecordDeliveryError()
	r.RecordError()
}

func TestCollector_GetSnapshot(t *testing.T) {
	c := NewCollector(nil)

	c.RecordConsumed()
	c.RecordConsumed()
	c.RecordPersisted(10 * time.Millisecond)
	c.RecordPersisted(20 * time.Millisecond)
	c.RecordPushed()
	c.RecordNoTarget()
	c.RecordDeliveryError()
	c.RecordError()

	s := c.GetSnapshot()

	if s.EnvelopesConsumed != 2 {
		t.Errorf("EnvelopesConsumed = %d, want 2", s.EnvelopesConsumed)
	}
	if s.AlarmsPersisted != 2 {
		t.Errorf("AlarmsPersisted = %d, want 2", s.AlarmsPersisted)
	}
	if s.AlarmsPushed != 1 {
		t.Errorf("AlarmsPushed = %d, want 1", s.AlarmsPushed)
	}
	if s.PushNoTarget != 1 {
		t.Errorf("PushNoTarget = %d, want 1", s.PushNoTarget)
	}
	if s.DeliveryErrors != 1 {
		t.Errorf("DeliveryErrors = %d, want 1", s.DeliveryErrors)
	}
	if s.ProcessingErrors != 1 {
		t.Errorf("ProcessingErrors = %d, want 1", s.ProcessingErrors)
	}

	wantAvg := float64(15 * time.Millisecond)
	if s.AvgPersistLatencyNs != wantAvg {
		t.Errorf("AvgPersistLatencyNs = %f, want %f", s.AvgPersistLatencyNs, wantAvg)
	}
}
