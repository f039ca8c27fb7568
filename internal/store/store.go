// Package store holds the four TrackMe collections in memory and writes each
// collection through to durable storage on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when an update or delete names an id that does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalid is returned when an input cannot be stored as given
	ErrInvalid = errors.New("invalid input")
)

// Collection names used in storage keys and change events
const (
	CollectionTasks      = "tasks"
	CollectionGoals      = "goals"
	CollectionMetrics    = "metrics"
	CollectionMetricLogs = "metric-logs"
)

// Collections lists every collection in hydration order
var Collections = []string{CollectionTasks, CollectionGoals, CollectionMetrics, CollectionMetricLogs}

// Store is the single owner of TrackMe state. Create it with New, call Hydrate
// once, then share the pointer with every consumer.
type Store struct {
	kv       storage.KV
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	prefix   string
	notifier ChangeNotifier

	mu         sync.RWMutex
	tasks      []models.Task
	goals      []models.Goal
	metrics    []models.Metric
	metricLogs []models.MetricLog
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for hydration warnings
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for creation dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id source
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithKeyPrefix namespaces every storage key as <prefix>.trackme-<collection>
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithChangeNotifier registers a hook called after every successful write
func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// New creates a store backed by kv. Collections are empty until Hydrate runs.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:         kv,
		logger:     zap.NewNop(),
		now:        time.Now,
		newID:      uuid.NewString,
		tasks:      []models.Task{},
		goals:      []models.Goal{},
		metrics:    []models.Metric{},
		metricLogs: []models.MetricLog{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key for a collection
func (s *Store) Key(collection string) string {
	key := "trackme-" + collection
	if s.prefix != "" {
		return s.prefix + "." + key
	}
	return key
}

// Ping checks the storage backend
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) today() string {
	return models.FormatDate(s.now())
}

// mutate runs fn under the write lock and delivers its changes once the lock is released
func (s *Store) mutate(ctx context.Context, fn func() ([]Change, error)) error {
	s.mu.Lock()
	changes, err := fn()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, changes)
	return nil
}

func save[T any](ctx context.Context, s *Store, collection string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}
	if err := s.kv.Set(ctx, s.Key(collection), data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", collection, err)
	}
	return nil
}

// uniqueID draws ids until one is unused. exists is called under the write lock.
func (s *Store) uniqueID(exists func(string) bool) string {
	for {
		id := s.newID()
		if id != "" && !exists(id) {
			return id
		}
	}
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func taskID(t models.Task) string           { return t.ID }
func goalID(g models.Goal) string           { return g.ID }
func metricID(m models.Metric) string       { return m.ID }
func metricLogID(l models.MetricLog) string { return l.ID }

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func without[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// checkFinite rejects NaN and infinite values, which cannot be persisted
func checkFinite(field string, values ...*float64) error {
	for _, v := range values {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%s must be a finite number: %w", field, ErrInvalid)
		}
	}
	return nil
}
