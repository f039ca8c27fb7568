package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/benvon/trackme/internal/storage"
)

func TestNew_RequiresURL(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestKVRepository(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := New(databaseURL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	repo, err := NewKVRepository(ctx, db)
	if err != nil {
		t.Fatalf("NewKVRepository failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM kv_store WHERE key = $1`, "test.trackme-tasks")
		_ = repo.Close()
	})
	_, _ = db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, "test.trackme-tasks")

	if _, err := repo.Get(ctx, "test.trackme-tasks"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on missing key error = %v, want storage.ErrNotFound", err)
	}

	if err := repo.Set(ctx, "test.trackme-tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(ctx, "test.trackme-tasks", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	got, err := repo.Get(ctx, "test.trackme-tasks")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Get = %s, want upserted value", got)
	}

	if err := repo.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
