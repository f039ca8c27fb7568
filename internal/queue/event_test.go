package queue

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/benvon/trackme/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestNewChangeEvent(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))
	change := store.Change{Collection: store.CollectionTasks, Operation: store.OperationDelete, RecordID: "2"}

	event := NewChangeEvent(change, at)

	if event.ID == uuid.Nil {
		t.Error("Expected event ID to be set")
	}
	if !event.OccurredAt.Equal(at) || event.OccurredAt.Location() != time.UTC {
		t.Errorf("Expected occurred_at %v in UTC, got %v", at, event.OccurredAt)
	}
	if diff := cmp.Diff(change, event.Change()); diff != "" {
		t.Errorf("Change() mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeEvent_Validate(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		event   ChangeEvent
		wantErr string
	}{
		{
			name:  "create with record",
			event: ChangeEvent{ID: id, Collection: store.CollectionGoals, Operation: store.OperationCreate, RecordID: "g1"},
		},
		{
			name:  "seed without record",
			event: ChangeEvent{ID: id, Collection: store.CollectionMetricLogs, Operation: store.OperationSeed},
		},
		{
			name:    "missing id",
			event:   ChangeEvent{Collection: store.CollectionTasks, Operation: store.OperationSeed},
			wantErr: "event id",
		},
		{
			name:    "unknown collection",
			event:   ChangeEvent{ID: id, Collection: "habits", Operation: store.OperationSeed},
			wantErr: "unknown collection",
		},
		{
			name:    "unknown operation",
			event:   ChangeEvent{ID: id, Collection: store.CollectionTasks, Operation: "archive", RecordID: "1"},
			wantErr: "unknown operation",
		},
		{
			name:    "update without record",
			event:   ChangeEvent{ID: id, Collection: store.CollectionMetrics, Operation: store.OperationUpdate},
			wantErr: "requires a record id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.event.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeChangeEvent(t *testing.T) {
	t.Parallel()

	original := NewChangeEvent(store.Change{
		Collection: store.CollectionMetrics,
		Operation:  store.OperationUpdate,
		RecordID:   "m1",
	}, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	body, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"record_id":"m1"`) || !strings.Contains(string(body), `"occurred_at":"2025-03-10T12:00:00Z"`) {
		t.Errorf("unexpected wire form: %s", body)
	}

	decoded, err := DecodeChangeEvent(body)
	if err != nil {
		t.Fatalf("DecodeChangeEvent() error = %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeChangeEvent([]byte("{not json")); err == nil {
		t.Error("expected error for malformed body")
	}
	if _, err := DecodeChangeEvent([]byte(`{"id":"` + uuid.NewString() + `","collection":"tasks","operation":"delete"}`)); err == nil {
		t.Error("expected error for delete without record id")
	}
}
