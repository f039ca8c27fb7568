package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{name: "empty", input: "", maxLength: 10, want: ""},
		{name: "plain", input: "tasks", maxLength: 10, want: "tasks"},
		{name: "control characters removed", input: "a\x00b\x1bc", maxLength: 10, want: "abc"},
		{name: "truncated", input: "abcdefghij", maxLength: 4, want: "abcd..."},
		{name: "invalid utf8 dropped", input: "ok\xff", maxLength: 10, want: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeString(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeHelpers(t *testing.T) {
	t.Parallel()

	if got := SanitizePath("/api/v1/tasks/\x001"); got != "/api/v1/tasks/1" {
		t.Errorf("SanitizePath = %q", got)
	}
	if got := SanitizeID(strings.Repeat("x", MaxIDLength+5)); len(got) != MaxIDLength+3 {
		t.Errorf("SanitizeID length = %d, want %d", len(got), MaxIDLength+3)
	}
	if got := SanitizeError(nil); got != "" {
		t.Errorf("SanitizeError(nil) = %q", got)
	}
	if got := SanitizeError(errors.New("boom\x07")); got != "boom" {
		t.Errorf("SanitizeError = %q", got)
	}
}

func TestNewProductionLogger_WritesLogFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "trackme.log")

	log, err := NewProductionLogger(false, path)
	if err != nil {
		t.Fatalf("NewProductionLogger failed: %v", err)
	}
	log.Info("store_hydrated")
	log.Debug("hidden_at_info_level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"store_hydrated"`) {
		t.Errorf("log file missing entry: %s", data)
	}
	if strings.Contains(string(data), "hidden_at_info_level") {
		t.Error("debug entry written at info level")
	}
}

func TestSync_NilLogger(t *testing.T) {
	t.Parallel()
	if err := Sync(nil); err != nil {
		t.Errorf("Sync(nil) = %v", err)
	}
}

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", MaxTitleLength+1)
	if got := SanitizeTitle(long); got != strings.Repeat("a", MaxTitleLength)+"..." {
		t.Errorf("SanitizeTitle did not truncate, got length %d", len(got))
	}
	if got := SanitizeTitle("Run 5k\x1b[31m"); got != "Run 5k[31m" {
		t.Errorf("SanitizeTitle = %q", got)
	}
}
