package main

import (
	"net/http"

	"github.com/benvon/trackme/internal/handlers"
	"github.com/benvon/trackme/internal/middleware"
	"github.com/benvon/trackme/internal/store"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

type routerDeps struct {
	store       *store.Store
	logger      *zap.Logger
	health      *handlers.HealthChecker
	registry    *prometheus.Registry
	rateLimit   func(http.Handler) http.Handler
	frontendURL string
	enableHSTS  bool
	tracing     bool
	tracingName string
}

// newRouter assembles middleware and routes. In gorilla/mux, middleware
// registered first is the outermost wrapper.
func newRouter(d routerDeps) *mux.Router {
	r := mux.NewRouter()
	metrics := middleware.NewMetrics(d.registry)

	if d.tracing {
		r.Use(otelmux.Middleware(d.tracingName))
	}
	r.Use(middleware.SecurityHeaders(d.enableHSTS))
	r.Use(middleware.CORS(d.frontendURL))
	r.Use(middleware.RequestID)
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(d.logger))
	r.Use(middleware.Audit(d.logger))
	r.Use(middleware.Logging(d.logger))
	r.Use(metrics.Middleware)

	// Probes and scrapes are not rate limited
	r.HandleFunc("/healthz", d.health.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	if d.rateLimit != nil {
		api.Use(d.rateLimit)
	}

	handlers.NewTaskHandler(d.store, d.logger).RegisterRoutes(api.PathPrefix("/tasks").Subrouter())
	handlers.NewGoalHandler(d.store, d.logger).RegisterRoutes(api.PathPrefix("/goals").Subrouter())
	metricHandler := handlers.NewMetricHandler(d.store, d.logger)
	metricHandler.RegisterRoutes(api.PathPrefix("/metrics").Subrouter())
	metricHandler.RegisterLogRoutes(api.PathPrefix("/metric-logs").Subrouter())
	handlers.NewReportHandler(d.store).RegisterRoutes(api)
	handlers.NewOpenAPIHandler().RegisterRoutes(api)

	// Preflight requests; CORS middleware has already written the headers
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
