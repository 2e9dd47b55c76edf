// Package config loads service configuration from DEPSCOPE_* environment
// variables with sane defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/depscope/depscope/pkg/cache"
	"github.com/depscope/depscope/pkg/observability"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Cache         cache.Config
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Health/metrics server (separate port for probes)
	HealthPort string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("DEPSCOPE_HOST", "0.0.0.0"),
			Port:            getEnv("DEPSCOPE_PORT", "8080"),
			ReadTimeout:     getEnvDuration("DEPSCOPE_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("DEPSCOPE_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("DEPSCOPE_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("DEPSCOPE_SHUTDOWN_TIMEOUT", 30*time.Second),
			MaxBodyBytes:    getEnvInt64("DEPSCOPE_MAX_BODY_BYTES", 1<<20),
			HealthPort:      getEnv("DEPSCOPE_HEALTH_PORT", "9090"),
		},
		Cache: cache.Config{
			MaxEntries: getEnvInt("DEPSCOPE_CACHE_MAX_ENTRIES", 512),
			TTL:        getEnvDuration("DEPSCOPE_CACHE_TTL", 5*time.Minute),
		},
		Observability: ObservabilityConfig{
			LogLevel:       observability.ParseLogLevel(getEnv("DEPSCOPE_LOG_LEVEL", "info")),
			MetricsEnabled: getEnvBool("DEPSCOPE_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	return nil
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
