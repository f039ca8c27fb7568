package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/trackme/internal/bootstrap"
	"github.com/benvon/trackme/internal/config"
	"github.com/benvon/trackme/internal/handlers"
	"github.com/benvon/trackme/internal/logger"
	"github.com/benvon/trackme/internal/middleware"
	"github.com/benvon/trackme/internal/queue"
	"github.com/benvon/trackme/internal/storage"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dlqGCInterval  = time.Hour
	dlqGCRetention = 24 * time.Hour
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(cfg.IsProduction(), debugMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("environment", cfg.Environment),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracing := false
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else if tp, err := telemetry.InitTracer(ctx, telemetry.ServiceName, cfg.OTELEndpoint, cfg.Environment); err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			tracing = true
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	kv, err := bootstrap.OpenStorage(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_open_storage", zap.Error(err))
	}
	defer func() {
		if err := kv.Close(); err != nil {
			zapLogger.Warn("failed_to_close_storage", zap.Error(err))
		}
	}()

	// Change events are optional
	var notifier store.ChangeNotifier
	var eventQueue *queue.RabbitMQQueue
	if cfg.RabbitMQURL != "" {
		eventQueue, err = bootstrap.ConnectQueue(ctx, cfg.RabbitMQURL, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries", zap.Error(err))
		}
		defer func() {
			if err := eventQueue.Close(); err != nil {
				zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
			}
		}()
		notifier = queue.NewNotifier(eventQueue)
	} else {
		zapLogger.Info("change_events_disabled")
	}

	s, err := bootstrap.NewStore(ctx, cfg, kv, zapLogger, notifier)
	if err != nil {
		zapLogger.Fatal("failed_to_load_store", zap.Error(err))
	}

	redisClient, closeRedis, err := rateLimitClient(cfg, kv)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer closeRedis()
	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit, redisClient)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	checks := map[string]handlers.Pinger{"storage": s}
	if eventQueue != nil {
		checks["queue"] = handlers.PingFunc(eventQueue.HealthCheck)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := newRouter(routerDeps{
		store:       s,
		logger:      zapLogger,
		health:      handlers.NewHealthChecker(cfg.Environment, checks),
		registry:    registry,
		rateLimit:   rateLimitMW,
		frontendURL: cfg.FrontendURL,
		enableHSTS:  cfg.EnableHSTS,
		tracing:     tracing,
		tracingName: telemetry.ServiceName,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   35 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if eventQueue != nil {
		gc := queue.NewGarbageCollector(eventQueue, dlqGCInterval, dlqGCRetention, zapLogger)
		go func() {
			if err := gc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zapLogger.Error("dlq_garbage_collector_stopped_with_error", zap.Error(err))
			}
		}()
		zapLogger.Info("started_dlq_garbage_collector",
			zap.Duration("interval", dlqGCInterval),
			zap.Duration("retention", dlqGCRetention),
		)
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// rateLimitClient shares the storage Redis client when Redis is the backend,
// dials REDIS_URL when it is set otherwise, and returns nil for in-memory limiting
func rateLimitClient(cfg *config.Config, kv storage.KV) (*redis.Client, func(), error) {
	if rkv, ok := kv.(*storage.RedisKV); ok {
		return rkv.Client(), func() {}, nil
	}
	if cfg.RedisURL == "" {
		return nil, func() {}, nil
	}
	rkv, err := storage.NewRedisKV(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return rkv.Client(), func() { _ = rkv.Close() }, nil
}
