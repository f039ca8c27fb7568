package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/trackme/internal/store"
)

// Notifier publishes store changes as ChangeEvents
type Notifier struct {
	publisher Publisher
	now       func() time.Time
}

// NewNotifier creates a store.ChangeNotifier backed by publisher
func NewNotifier(publisher Publisher) *Notifier {
	return &Notifier{publisher: publisher, now: time.Now}
}

// NotifyChange publishes change
func (n *Notifier) NotifyChange(ctx context.Context, change store.Change) error {
	event := NewChangeEvent(change, n.now())
	if err := n.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %s event for %s: %w", change.Operation, change.Collection, err)
	}
	return nil
}

var _ store.ChangeNotifier = (*Notifier)(nil)
