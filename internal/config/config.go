package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ConfigFileEnv names the optional config file read before the environment
const ConfigFileEnv = "TRACKME_CONFIG"

// Config holds application configuration
type Config struct {
	ServerPort       string
	Environment      string
	FrontendURL      string
	EnableHSTS       bool
	RateLimit        string
	ServerDebugMode  bool
	WorkerDebugMode  bool
	StorageBackend   string
	DataDir          string
	StorageKeyPrefix string
	RedisURL         string
	DatabaseURL      string
	RabbitMQURL      string
	RabbitMQPrefetch int
	OTELEnabled      bool
	OTELEndpoint     string
	LogFile          string
}

var defaults = map[string]any{
	"SERVER_PORT":                 "8080",
	"ENVIRONMENT":                 "development",
	"FRONTEND_URL":                "http://localhost:3000",
	"ENABLE_HSTS":                 false,
	"RATE_LIMIT":                  "20-S",
	"SERVER_DEBUG_MODE":           false,
	"WORKER_DEBUG_MODE":           false,
	"STORAGE_BACKEND":             BackendFile,
	"DATA_DIR":                    "./data",
	"STORAGE_KEY_PREFIX":          "",
	"REDIS_URL":                   "",
	"DATABASE_URL":                "",
	"RABBITMQ_URL":                "",
	"RABBITMQ_PREFETCH":           1,
	"OTEL_ENABLED":                false,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"LOG_FILE":                    "",
}

// Load loads configuration from environment variables, layered over the file
// named by TRACKME_CONFIG when it is set
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		ServerPort:       v.GetString("SERVER_PORT"),
		Environment:      v.GetString("ENVIRONMENT"),
		FrontendURL:      v.GetString("FRONTEND_URL"),
		EnableHSTS:       v.GetBool("ENABLE_HSTS"),
		RateLimit:        v.GetString("RATE_LIMIT"),
		ServerDebugMode:  v.GetBool("SERVER_DEBUG_MODE"),
		WorkerDebugMode:  v.GetBool("WORKER_DEBUG_MODE"),
		StorageBackend:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DataDir:          v.GetString("DATA_DIR"),
		StorageKeyPrefix: v.GetString("STORAGE_KEY_PREFIX"),
		RedisURL:         v.GetString("REDIS_URL"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQPrefetch: v.GetInt("RABBITMQ_PREFETCH"),
		OTELEnabled:      v.GetBool("OTEL_ENABLED"),
		OTELEndpoint:     v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogFile:          v.GetString("LOG_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected storage backend has what it needs
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file storage backend")
		}
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis storage backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want file, memory, redis or postgres)", c.StorageBackend)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}
	if c.RabbitMQPrefetch < 1 {
		c.RabbitMQPrefetch = 1
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
