package queue

import (
	"context"
	"time"
)

// MessageInterface defines the interface for queue messages
type MessageInterface interface {
	Ack() error
	Nack(requeue bool) error
	GetEvent() *ChangeEvent
}

// EventQueue is the interface for change event queues
type EventQueue interface {
	// Publish sends an event to the queue
	Publish(ctx context.Context, event *ChangeEvent) error

	// Consume returns a channel of messages from the queue.
	// The caller is responsible for acknowledging each message.
	// Prefetch controls how many unacknowledged messages each consumer can hold.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close closes the queue connection
	Close() error

	// HealthCheck verifies the queue connection is healthy
	HealthCheck(ctx context.Context) error
}

// Publisher is the write half of EventQueue
type Publisher interface {
	Publish(ctx context.Context, event *ChangeEvent) error
}

// DLQPurger removes dead-lettered events older than retention and reports how many were removed
type DLQPurger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error)
}
