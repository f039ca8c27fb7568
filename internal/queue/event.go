package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benvon/trackme/internal/store"
	"github.com/google/uuid"
)

// ChangeEvent is the wire form of a committed store change
type ChangeEvent struct {
	ID         uuid.UUID       `json:"id"`
	Collection string          `json:"collection"`
	Operation  store.Operation `json:"operation"`
	RecordID   string          `json:"record_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewChangeEvent wraps a store change in an event stamped with at
func NewChangeEvent(change store.Change, at time.Time) *ChangeEvent {
	return &ChangeEvent{
		ID:         uuid.New(),
		Collection: change.Collection,
		Operation:  change.Operation,
		RecordID:   change.RecordID,
		OccurredAt: at.UTC(),
	}
}

// Change converts the event back to a store change
func (e *ChangeEvent) Change() store.Change {
	return store.Change{
		Collection: e.Collection,
		Operation:  e.Operation,
		RecordID:   e.RecordID,
	}
}

// Validate reports whether the event names a known collection and operation
func (e *ChangeEvent) Validate() error {
	if e.ID == uuid.Nil {
		return errors.New("event id is required")
	}
	known := false
	for _, c := range store.Collections {
		if c == e.Collection {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown collection %q", e.Collection)
	}
	switch e.Operation {
	case store.OperationCreate, store.OperationUpdate, store.OperationDelete:
		if e.RecordID == "" {
			return fmt.Errorf("%s event requires a record id", e.Operation)
		}
	case store.OperationSeed:
	default:
		return fmt.Errorf("unknown operation %q", e.Operation)
	}
	return nil
}

// DecodeChangeEvent parses and validates an event body
func DecodeChangeEvent(body []byte) (*ChangeEvent, error) {
	var event ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return &event, nil
}
