package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// FileKV stores each key as <dir>/<key>.json. Writes go to a temp file that is
// renamed into place, and every access holds an flock on <key>.json.lock so
// separate processes sharing the directory never observe a partial write.
type FileKV struct {
	dir string
}

// NewFileKV creates the data directory if needed and returns a file-backed store
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the data directory
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// lock acquires the per-key file lock and returns its release function
func (f *FileKV) lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	fileLock := flock.New(f.path(key) + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock for %s", key)
	}
	return func() { _ = fileLock.Unlock() }, nil
}

// Get implements KV.Get
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	unlock, err := f.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set implements KV.Set
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	unlock, err := f.lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	target := f.path(key)
	tmpFile := target + ".tmp"
	if err := os.WriteFile(tmpFile, value, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, target); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Ping checks that the data directory is still a writable directory
func (f *FileKV) Ping(context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", f.dir)
	}
	probe, err := os.CreateTemp(f.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// Close implements KV.Close
func (f *FileKV) Close() error {
	return nil
}
