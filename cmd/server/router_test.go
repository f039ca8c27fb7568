package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benvon/trackme/internal/handlers"
	"github.com/benvon/trackme/internal/middleware"
	"github.com/benvon/trackme/internal/request"
	"github.com/benvon/trackme/internal/storage"
	"github.com/benvon/trackme/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T, rate string) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	s := store.New(storage.NewMemoryKV(), store.WithLogger(logger))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	rateLimit, err := middleware.RateLimit(rate, nil)
	if err != nil {
		t.Fatalf("RateLimit failed: %v", err)
	}
	return newRouter(routerDeps{
		store:       s,
		logger:      logger,
		health:      handlers.NewHealthChecker("test", map[string]handlers.Pinger{"storage": s}),
		registry:    prometheus.NewRegistry(),
		rateLimit:   rateLimit,
		frontendURL: "http://localhost:3000",
	})
}

func serve(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthAndHeaders(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, "100-S")

	rec := serve(h, http.MethodGet, "/healthz?mode=extended", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected security headers on health response")
	}
	if rec.Header().Get(request.RequestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}
	if !strings.Contains(rec.Body.String(), `"storage":"healthy"`) {
		t.Errorf("Expected storage check in body, got %s", rec.Body.String())
	}
}

func TestRouter_ContentTypeEnforced(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, "100-S")

	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{name: "json", contentType: "application/json; charset=utf-8", wantStatus: http.StatusCreated},
		{name: "text", contentType: "text/plain", wantStatus: http.StatusUnsupportedMediaType},
		{name: "missing", contentType: "", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := serve(h, http.MethodPost, "/api/v1/tasks", tt.contentType, `{"title":"Router task"}`)
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.wantStatus, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_PrometheusScrape(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, "100-S")

	serve(h, http.MethodGet, "/api/v1/tasks", "", "")
	serve(h, http.MethodGet, "/api/v1/tasks/missing", "", "")

	rec := serve(h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from scrape, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`trackme_http_requests_total{method="GET",route="/api/v1/tasks",status="200"} 1`,
		`trackme_http_requests_total{method="GET",route="/api/v1/tasks/{id}",status="404"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected scrape to contain %q", want)
		}
	}
}

func TestRouter_RateLimitsAPI(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		if rec := serve(h, http.MethodGet, "/api/v1/board", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := serve(h, http.MethodGet, "/api/v1/board", "", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after limit, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Errorf("Health checks must not be rate limited, got %d", rec.Code)
	}
}
