package queue

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/benvon/trackme/internal/store"
	amqp "github.com/rabbitmq/amqp091-go"
)

// recordingAcknowledger stands in for the broker channel behind a delivery
type recordingAcknowledger struct {
	mu    sync.Mutex
	acks  []uint64
	nacks map[uint64]bool
}

func newRecordingAcknowledger() *recordingAcknowledger {
	return &recordingAcknowledger{nacks: make(map[uint64]bool)}
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks = append(a.acks, tag)
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks[tag] = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func runForward(t *testing.T, ctx context.Context, deliveries chan amqp.Delivery) (chan *Message, chan error) {
	t.Helper()
	msgChan := make(chan *Message, 1)
	errChan := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardDeliveries(ctx, deliveries, nil, msgChan, errChan)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forwardDeliveries did not return")
	}
	return msgChan, errChan
}

func TestForwardDeliveries_ClosedChannelWithPendingError(t *testing.T) {
	t.Parallel()

	ack := newRecordingAcknowledger()
	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("not json")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte(`{"id":""}`)}
	close(deliveries)

	_, errChan := runForward(t, context.Background(), deliveries)

	select {
	case err := <-errChan:
		if err == nil {
			t.Error("Expected the first decode error to be reported")
		}
	default:
		t.Error("Expected an error on errChan")
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	for _, tag := range []uint64{1, 2} {
		requeue, ok := ack.nacks[tag]
		if !ok {
			t.Errorf("delivery %d was not nacked", tag)
		}
		if requeue {
			t.Errorf("delivery %d was requeued instead of dead-lettered", tag)
		}
	}
}

func TestForwardDeliveries_ForwardsDecodedEvents(t *testing.T) {
	t.Parallel()

	event := NewChangeEvent(store.Change{
		Collection: store.CollectionTasks,
		Operation:  store.OperationDelete,
		RecordID:   "2",
	}, time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	ack := newRecordingAcknowledger()
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: body}
	close(deliveries)

	msgChan, errChan := runForward(t, context.Background(), deliveries)

	msg := <-msgChan
	if msg.DeliveryTag != 7 || msg.Event.ID != event.ID || msg.Event.RecordID != "2" {
		t.Errorf("Unexpected message %+v", msg)
	}
	if err := <-errChan; err == nil || err.Error() != "delivery channel closed" {
		t.Errorf("Expected 'delivery channel closed', got %v", err)
	}
}

func TestForwardDeliveries_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, errChan := runForward(t, ctx, make(chan amqp.Delivery))

	select {
	case err := <-errChan:
		t.Errorf("Expected no error after cancel, got %v", err)
	default:
	}
}
