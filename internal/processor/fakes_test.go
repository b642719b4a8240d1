package processor

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/junthetechguy/sns-demo/internal/database"
	"github.com/junthetechguy/sns-demo/internal/events"
)

// fakeConsumer is a test fake for MessageConsumer.
type fakeConsumer struct {
	messages      []*events.AlarmEvent
	kafkaMessages []*kafka.Message
	readIndex     int
	readErr       error
	poisonMsg     *kafka.Message
	commitErr     error
	commits       []*kafka.Message
}

func newFakeConsumer() *fakeConsumer {
	return &fakeConsumer{}
}

func (f *fakeConsumer) AddEvent(ev *events.AlarmEvent) {
	f.messages = append(f.messages, ev)
	f.kafkaMessages = append(f.kafkaMessages, &kafka.Message{
		Topic:     "alarm",
		Partition: 0,
		Offset:    int64(len(f.messages)),
		Value:     []byte("test"),
	})
}

func (f *fakeConsumer) ReadMessage(ctx context.Context) (*events.AlarmEvent, *kafka.Message, error) {
	if f.readErr != nil {
		return nil, f.poisonMsg, f.readErr
	}
	if f.readIndex >= len(f.messages) {
		// Block until context is cancelled (simulates waiting for a message)
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	ev := f.messages[f.readIndex]
	msg := f.kafkaMessages[f.readIndex]
	f.readIndex++
	return ev, msg, nil
}

func (f *fakeConsumer) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	f.commits = append(f.commits, msg)
	return f.commitErr
}

func (f *fakeConsumer) Close() error {
	return nil
}

// fakeStore is a test fake for AlarmStore.
type fakeStore struct {
	alarms    []*database.Alarm
	nextID    int64
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) CreateAlarm(ctx context.Context, userID int64, alarmType events.AlarmType, args events.AlarmArgs) (*database.Alarm, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	alarm := &database.Alarm{
		ID:     f.nextID,
		UserID: userID,
		Type:   alarmType,
		Text:   alarmType.Text(),
		Args:   args,
	}
	f.nextID++
	f.alarms = append(f.alarms, alarm)
	return alarm, nil
}

// fakeDeliverer is a test fake for AlarmDeliverer.
type fakeDeliverer struct {
	deliverErr error
	delivered  []int64 // alarm IDs in delivery order
	recipients []int64
}

func newFakeDeliverer() *fakeDeliverer {
	return &fakeDeliverer{}
}

func (f *fakeDeliverer) Deliver(alarmID, userID int64) error {
	f.delivered = append(f.delivered, alarmID)
	f.recipients = append(f.recipients, userID)
	return f.deliverErr
}

// errStorage is a reusable sentinel for store failures.
var errStorage = errors.New("storage unavailable")
