package workers

import (
	"context"
	"errors"
	"fmt"

	logpkg "github.com/benvon/trackme/internal/logger"
	"github.com/benvon/trackme/internal/queue"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"go.uber.org/zap"
)

// Summarizer reloads the store after each change event and logs the
// refreshed dashboard summary
type Summarizer struct {
	store  *store.Store
	logger *zap.Logger
}

// NewSummarizer creates a new summarizer over s. s is reloaded from storage
// on every event, so it must share the API's storage backend.
func NewSummarizer(s *store.Store, logger *zap.Logger) *Summarizer {
	return &Summarizer{store: s, logger: logger}
}

// ProcessMessage handles one change event. Messages without an event go to
// the DLQ; storage failures are requeued.
func (w *Summarizer) ProcessMessage(ctx context.Context, msg queue.MessageInterface) error {
	event := msg.GetEvent()
	if event == nil {
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("failed_to_nack_message", zap.Error(nackErr))
		}
		return errors.New("message carries no event")
	}

	if err := w.store.Hydrate(ctx); err != nil {
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Warn("failed_to_nack_message", zap.Error(nackErr))
		}
		return fmt.Errorf("failed to reload store: %w", err)
	}

	summary := reports.Dashboard(w.store.Tasks(), w.store.Goals(), w.store.Metrics(), w.store.MetricLogs())
	w.logger.Info("dashboard_refreshed",
		zap.String("event_id", event.ID.String()),
		zap.String("collection", event.Collection),
		zap.String("operation", string(event.Operation)),
		zap.String("record_id", event.RecordID),
		zap.Int("total_tasks", summary.TotalTasks),
		zap.Int("completion_percent", summary.CompletionPercent),
		zap.Int("active_goals", summary.ActiveGoals),
		zap.Int("completed_goals", summary.CompletedGoals),
		zap.Float64("average_goal_progress", summary.AverageGoalProgress),
		zap.Int("total_metric_logs", summary.TotalMetricLogs),
	)

	if event.Collection == store.CollectionGoals && event.Operation == store.OperationUpdate {
		if goal, err := w.store.Goal(event.RecordID); err == nil && goal.IsComplete() {
			w.logger.Info("goal_completed",
				zap.String("goal_id", goal.ID),
				zap.String("title", logpkg.SanitizeTitle(goal.Title)),
				zap.String("completed_at", goal.CompletedAt),
			)
		}
	}

	if err := msg.Ack(); err != nil {
		return fmt.Errorf("failed to ack event: %w", err)
	}
	return nil
}

// Run processes messages until ctx is cancelled or msgs is closed. Queue
// errors are logged.
func (w *Summarizer) Run(ctx context.Context, msgs <-chan *queue.Message, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Error("queue_error", zap.Error(err))
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Info("message_channel_closed")
				return
			}
			if err := w.ProcessMessage(ctx, msg); err != nil {
				w.logger.Error("failed_to_process_event",
					zap.Error(err),
					zap.String("event_id", eventID(msg)),
				)
			}
		}
	}
}

func eventID(msg *queue.Message) string {
	if msg == nil || msg.Event == nil {
		return ""
	}
	return msg.Event.ID.String()
}
