package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benvon/trackme/internal/storage"
	"github.com/benvon/trackme/internal/store"
	"github.com/gorilla/mux"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

type testServer struct {
	router *mux.Router
	store  *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)
	s := store.New(storage.NewMemoryKV(), store.WithLogger(logger), store.WithClock(func() time.Time { return testNow }))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	NewTaskHandler(s, logger).RegisterRoutes(api.PathPrefix("/tasks").Subrouter())

	goals := NewGoalHandler(s, logger)
	goals.now = func() time.Time { return testNow }
	goals.RegisterRoutes(api.PathPrefix("/goals").Subrouter())

	metrics := NewMetricHandler(s, logger)
	metrics.RegisterRoutes(api.PathPrefix("/metrics").Subrouter())
	metrics.RegisterLogRoutes(api.PathPrefix("/metric-logs").Subrouter())

	reportHandler := NewReportHandler(s)
	reportHandler.now = func() time.Time { return testNow }
	reportHandler.RegisterRoutes(api)

	return &testServer{router: r, store: s}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("Expected success envelope, got error %q: %s", env.Error, env.Message)
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestRespondJSON_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]string{"id": "7"})

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || string(env.Data) != `{"id":"7"}` {
		t.Errorf("unexpected envelope %+v", env)
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Errorf("timestamp is not RFC3339: %q", env.Timestamp)
	}
}

func TestRespondJSONError_TruncatesMessage(t *testing.T) {
	t.Parallel()

	long := string(bytes.Repeat([]byte("x"), 300))
	rec := httptest.NewRecorder()
	respondJSONError(rec, http.StatusBadRequest, "Bad Request", long)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error != "Bad Request" {
		t.Errorf("unexpected envelope %+v", env)
	}
	if len(env.Message) != 203 {
		t.Errorf("Expected message truncated to 203 chars, got %d", len(env.Message))
	}
}

func TestNumberInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "number", input: `12.5`, want: 12.5},
		{name: "numeric string", input: `" 42 "`, want: 42},
		{name: "negative", input: `-3`, want: -3},
		{name: "word", input: `"abc"`, wantErr: true},
		{name: "empty string", input: `""`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "nan string", input: `"NaN"`, wantErr: true},
		{name: "infinity string", input: `"-Infinity"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var n numberInput
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", float64(n))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if float64(n) != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, float64(n))
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	healthy := PingFunc(func(context.Context) error { return nil })
	broken := PingFunc(func(context.Context) error { return context.DeadlineExceeded })

	tests := []struct {
		name       string
		checks     map[string]Pinger
		query      string
		wantStatus int
		wantHealth string
		wantChecks int
	}{
		{name: "basic ignores checks", checks: map[string]Pinger{"storage": broken}, wantStatus: http.StatusOK, wantHealth: "healthy"},
		{name: "extended healthy", checks: map[string]Pinger{"storage": healthy}, query: "?mode=extended", wantStatus: http.StatusOK, wantHealth: "healthy", wantChecks: 1},
		{name: "extended unhealthy", checks: map[string]Pinger{"storage": healthy, "queue": broken}, query: "?mode=extended", wantStatus: http.StatusServiceUnavailable, wantHealth: "unhealthy", wantChecks: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthChecker("test", tt.checks)
			rec := httptest.NewRecorder()
			h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz"+tt.query, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantHealth || resp.Environment != "test" {
				t.Errorf("unexpected response %+v", resp)
			}
			if len(resp.Checks) != tt.wantChecks {
				t.Errorf("Expected %d checks, got %v", tt.wantChecks, resp.Checks)
			}
		})
	}
}
