package store

import (
	"context"

	"go.uber.org/zap"
)

// Operation names the kind of write that produced a Change
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationSeed   Operation = "seed"
)

// Change describes one committed write
type Change struct {
	Collection string
	Operation  Operation
	RecordID   string
}

// ChangeNotifier receives committed changes. Errors are logged and never roll
// back the write.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context, change Change) error
}

// ChangeNotifierFunc adapts a function to ChangeNotifier
type ChangeNotifierFunc func(ctx context.Context, change Change) error

// NotifyChange calls f
func (f ChangeNotifierFunc) NotifyChange(ctx context.Context, change Change) error {
	return f(ctx, change)
}

func (s *Store) notify(ctx context.Context, changes []Change) {
	if s.notifier == nil {
		return
	}
	for _, change := range changes {
		if err := s.notifier.NotifyChange(ctx, change); err != nil {
			s.logger.Warn("change_notification_failed",
				zap.String("collection", change.Collection),
				zap.String("operation", string(change.Operation)),
				zap.String("record_id", change.RecordID),
				zap.Error(err),
			)
		}
	}
}
