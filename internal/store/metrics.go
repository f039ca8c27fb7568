package store

import (
	"context"
	"fmt"

	"github.com/benvon/trackme/internal/models"
)

// Metrics returns a copy of the metric collection in stored order
func (s *Store) Metrics() []models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Metric{}, s.metrics...)
}

// Metric returns the metric with the given id
func (s *Store) Metric(id string) (models.Metric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.metrics, id, metricID)
	if i < 0 {
		return models.Metric{}, fmt.Errorf("metric %s: %w", id, ErrNotFound)
	}
	return s.metrics[i], nil
}

// AddMetric appends a new metric
func (s *Store) AddMetric(ctx context.Context, in models.NewMetric) (models.Metric, error) {
	var metric models.Metric

	err := s.mutate(ctx, func() ([]Change, error) {
		metric = models.Metric{
			ID: s.uniqueID(func(id string) bool {
				return indexOf(s.metrics, id, metricID) >= 0
			}),
			Name:        in.Name,
			Description: in.Description,
			Unit:        in.Unit,
			Color:       in.Color,
			CreatedAt:   s.today(),
		}
		if metric.Color == "" {
			metric.Color = models.DefaultMetricColor
		}

		next := append(append([]models.Metric{}, s.metrics...), metric)
		if err := save(ctx, s, CollectionMetrics, next); err != nil {
			return nil, err
		}
		s.metrics = next
		return []Change{{Collection: CollectionMetrics, Operation: OperationCreate, RecordID: metric.ID}}, nil
	})
	if err != nil {
		return models.Metric{}, err
	}
	return metric, nil
}

// UpdateMetric merges patch into the metric with the given id
func (s *Store) UpdateMetric(ctx context.Context, id string, patch models.MetricPatch) (models.Metric, error) {
	var metric models.Metric

	err := s.mutate(ctx, func() ([]Change, error) {
		i := indexOf(s.metrics, id, metricID)
		if i < 0 {
			return nil, fmt.Errorf("metric %s: %w", id, ErrNotFound)
		}

		next := append([]models.Metric{}, s.metrics...)
		patch.Apply(&next[i])

		if err := save(ctx, s, CollectionMetrics, next); err != nil {
			return nil, err
		}
		s.metrics = next
		metric = next[i]
		return []Change{{Collection: CollectionMetrics, Operation: OperationUpdate, RecordID: id}}, nil
	})
	if err != nil {
		return models.Metric{}, err
	}
	return metric, nil
}

// DeleteMetric removes the metric and every log that references it. The metric
// collection is written first; if the log write then fails the metric stays
// deleted, its logs remain, and the error is returned.
func (s *Store) DeleteMetric(ctx context.Context, id string) error {
	return s.mutate(ctx, func() ([]Change, error) {
		if indexOf(s.metrics, id, metricID) < 0 {
			return nil, fmt.Errorf("metric %s: %w", id, ErrNotFound)
		}

		nextMetrics := without(s.metrics, func(m models.Metric) bool { return m.ID != id })
		if err := save(ctx, s, CollectionMetrics, nextMetrics); err != nil {
			return nil, err
		}
		s.metrics = nextMetrics

		nextLogs := without(s.metricLogs, func(l models.MetricLog) bool { return l.MetricID != id })
		if len(nextLogs) == len(s.metricLogs) {
			return []Change{{Collection: CollectionMetrics, Operation: OperationDelete, RecordID: id}}, nil
		}
		if err := save(ctx, s, CollectionMetricLogs, nextLogs); err != nil {
			return nil, fmt.Errorf("metric %s deleted but its logs were not: %w", id, err)
		}
		s.metricLogs = nextLogs

		return []Change{
			{Collection: CollectionMetrics, Operation: OperationDelete, RecordID: id},
			{Collection: CollectionMetricLogs, Operation: OperationDelete, RecordID: id},
		}, nil
	})
}

// MetricLogs returns a copy of every log in stored order
func (s *Store) MetricLogs() []models.MetricLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MetricLog{}, s.metricLogs...)
}

// LogsForMetric returns the logs whose MetricID equals metricID
func (s *Store) LogsForMetric(metricID string) []models.MetricLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return without(s.metricLogs, func(l models.MetricLog) bool { return l.MetricID == metricID })
}

// AddMetricLog appends a log entry. The referenced metric is not checked.
func (s *Store) AddMetricLog(ctx context.Context, in models.NewMetricLog) (models.MetricLog, error) {
	if err := checkFinite("value", &in.Value); err != nil {
		return models.MetricLog{}, err
	}
	var entry models.MetricLog

	err := s.mutate(ctx, func() ([]Change, error) {
		entry = models.MetricLog{
			ID: s.uniqueID(func(id string) bool {
				return indexOf(s.metricLogs, id, metricLogID) >= 0
			}),
			MetricID: in.MetricID,
			Value:    in.Value,
			Date:     in.Date,
			Notes:    in.Notes,
		}
		if entry.Date == "" {
			entry.Date = s.today()
		}

		next := append(append([]models.MetricLog{}, s.metricLogs...), entry)
		if err := save(ctx, s, CollectionMetricLogs, next); err != nil {
			return nil, err
		}
		s.metricLogs = next
		return []Change{{Collection: CollectionMetricLogs, Operation: OperationCreate, RecordID: entry.ID}}, nil
	})
	if err != nil {
		return models.MetricLog{}, err
	}
	return entry, nil
}

// DeleteMetricLog removes one log entry
func (s *Store) DeleteMetricLog(ctx context.Context, id string) error {
	return s.mutate(ctx, func() ([]Change, error) {
		if indexOf(s.metricLogs, id, metricLogID) < 0 {
			return nil, fmt.Errorf("metric log %s: %w", id, ErrNotFound)
		}

		next := without(s.metricLogs, func(l models.MetricLog) bool { return l.ID != id })
		if err := save(ctx, s, CollectionMetricLogs, next); err != nil {
			return nil, err
		}
		s.metricLogs = next
		return []Change{{Collection: CollectionMetricLogs, Operation: OperationDelete, RecordID: id}}, nil
	})
}
