package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benvon/trackme/internal/storage"
	"go.uber.org/zap"
)

// Hydrate loads every collection from storage. A collection that was never
// written, or whose stored value cannot be decoded, is replaced by the default
// data and the defaults are persisted. Only read and write failures of the
// backend itself are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	var changes []Change

	err := s.mutate(ctx, func() ([]Change, error) {
		tasks, seeded, err := load(ctx, s, CollectionTasks, seedTasks, taskID)
		if err != nil {
			return nil, err
		}
		changes = appendSeed(changes, CollectionTasks, seeded)

		goals, seeded, err := load(ctx, s, CollectionGoals, seedGoals, goalID)
		if err != nil {
			return nil, err
		}
		changes = appendSeed(changes, CollectionGoals, seeded)

		metrics, seeded, err := load(ctx, s, CollectionMetrics, seedMetrics, metricID)
		if err != nil {
			return nil, err
		}
		changes = appendSeed(changes, CollectionMetrics, seeded)

		logs, seeded, err := load(ctx, s, CollectionMetricLogs, seedMetricLogs, metricLogID)
		if err != nil {
			return nil, err
		}
		changes = appendSeed(changes, CollectionMetricLogs, seeded)

		for i := range tasks {
			if tasks[i].Tags == nil {
				tasks[i].Tags = []string{}
			}
		}

		s.tasks, s.goals, s.metrics, s.metricLogs = tasks, goals, metrics, logs
		return changes, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("store_hydrated",
		zap.Int("tasks", len(s.Tasks())),
		zap.Int("goals", len(s.Goals())),
		zap.Int("metrics", len(s.Metrics())),
		zap.Int("metric_logs", len(s.MetricLogs())),
	)
	return nil
}

// Reset replaces every collection with the default data
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, func() ([]Change, error) {
		tasks, goals, metrics, logs := seedTasks(), seedGoals(), seedMetrics(), seedMetricLogs()

		if err := save(ctx, s, CollectionTasks, tasks); err != nil {
			return nil, err
		}
		s.tasks = tasks
		if err := save(ctx, s, CollectionGoals, goals); err != nil {
			return nil, err
		}
		s.goals = goals
		if err := save(ctx, s, CollectionMetrics, metrics); err != nil {
			return nil, err
		}
		s.metrics = metrics
		if err := save(ctx, s, CollectionMetricLogs, logs); err != nil {
			return nil, err
		}
		s.metricLogs = logs

		s.logger.Info("store_reset")
		var changes []Change
		for _, collection := range Collections {
			changes = appendSeed(changes, collection, true)
		}
		return changes, nil
	})
}

func appendSeed(changes []Change, collection string, seeded bool) []Change {
	if !seeded {
		return changes
	}
	return append(changes, Change{Collection: collection, Operation: OperationSeed})
}

// load reads one collection, falling back to seed data. The bool reports
// whether the seed was used.
func load[T any](ctx context.Context, s *Store, collection string, seed func() []T, idOf func(T) string) ([]T, bool, error) {
	key := s.Key(collection)

	data, err := s.kv.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("collection_seeded", zap.String("collection", collection), zap.String("key", key))
	case err != nil:
		return nil, false, fmt.Errorf("failed to read %s: %w", collection, err)
	default:
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			s.logger.Warn("stored_collection_unreadable_using_defaults",
				zap.String("collection", collection),
				zap.String("key", key),
				zap.Error(err),
			)
			break
		}
		if items == nil {
			items = []T{}
		}
		warnDuplicateIDs(s.logger, collection, items, idOf)
		return items, false, nil
	}

	items := seed()
	if err := save(ctx, s, collection, items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func warnDuplicateIDs[T any](logger *zap.Logger, collection string, items []T, idOf func(T) string) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := idOf(item)
		if _, ok := seen[id]; ok {
			logger.Warn("stored_collection_has_duplicate_id",
				zap.String("collection", collection),
				zap.String("id", id),
			)
			continue
		}
		seen[id] = struct{}{}
	}
}

