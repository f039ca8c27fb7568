// Package bootstrap opens the configured storage backend and builds a hydrated store
package bootstrap

import (
	"context"
	"fmt"

	"github.com/benvon/trackme/internal/config"
	"github.com/benvon/trackme/internal/database"
	"github.com/benvon/trackme/internal/storage"
	"github.com/benvon/trackme/internal/store"
	"go.uber.org/zap"
)

// OpenStorage connects to the backend named by cfg.StorageBackend
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.KV, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info("storage_opened", zap.String("backend", cfg.StorageBackend), zap.String("dir", kv.Dir()))
		return kv, nil
	case config.BackendMemory:
		logger.Warn("storage_opened", zap.String("backend", cfg.StorageBackend), zap.String("note", "data is lost on exit"))
		return storage.NewMemoryKV(), nil
	case config.BackendRedis:
		kv, err := storage.NewRedisKV(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("storage_opened", zap.String("backend", cfg.StorageBackend))
		return kv, nil
	case config.BackendPostgres:
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo, err := database.NewKVRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("storage_opened", zap.String("backend", cfg.StorageBackend))
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewStore builds a store over kv using the configured key prefix and hydrates it
func NewStore(ctx context.Context, cfg *config.Config, kv storage.KV, logger *zap.Logger, notifier store.ChangeNotifier) (*store.Store, error) {
	opts := []store.Option{
		store.WithLogger(logger),
		store.WithKeyPrefix(cfg.StorageKeyPrefix),
	}
	if notifier != nil {
		opts = append(opts, store.WithChangeNotifier(notifier))
	}
	s := store.New(kv, opts...)
	if err := s.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to hydrate store: %w", err)
	}
	return s, nil
}
