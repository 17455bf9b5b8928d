// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// DatasetConfig holds the dump file settings.
type DatasetConfig struct {
	Path           string      `mapstructure:"path"`
	FieldDelimiter string      `mapstructure:"field_delimiter"`
	ListDelimiter  string      `mapstructure:"list_delimiter"`
	BatchSize      int         `mapstructure:"batch_size"`
	SampleCap      int         `mapstructure:"sample_cap"`
	Remote         FetchConfig `mapstructure:"remote"`
}

// FetchConfig holds remote dump fetch settings. An empty URL disables
// remote fetching.
type FetchConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	CB      CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// CacheConfig holds caching settings. ResultCapacity bounds the
// in-process result cache; the remaining fields configure the shared
// Redis stats cache.
type CacheConfig struct {
	ResultCapacity int           `mapstructure:"result_capacity"`
	SharedEnabled  bool          `mapstructure:"shared_enabled"`
	StatsTTL       time.Duration `mapstructure:"stats_ttl"`
	KeyPrefix      string        `mapstructure:"key_prefix"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis host:port address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StatsConfig holds the background stats refresh job settings.
type StatsConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RefreshTimeout  time.Duration `mapstructure:"refresh_timeout"`
	OnStartup       bool          `mapstructure:"on_startup"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "video-catalog-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Dataset defaults
	v.SetDefault("dataset.path", "./data/videos.txt")
	v.SetDefault("dataset.field_delimiter", "|")
	v.SetDefault("dataset.list_delimiter", ";")
	v.SetDefault("dataset.batch_size", 10000)
	v.SetDefault("dataset.sample_cap", 50000)
	v.SetDefault("dataset.remote.url", "")
	v.SetDefault("dataset.remote.timeout", "60s")
	v.SetDefault("dataset.remote.retry.max_attempts", 3)
	v.SetDefault("dataset.remote.retry.wait_time", "1s")
	v.SetDefault("dataset.remote.retry.max_wait_time", "5s")
	v.SetDefault("dataset.remote.circuit_breaker.max_requests", 3)
	v.SetDefault("dataset.remote.circuit_breaker.interval", "60s")
	v.SetDefault("dataset.remote.circuit_breaker.timeout", "30s")
	v.SetDefault("dataset.remote.circuit_breaker.failure_ratio", 0.5)

	// Cache defaults
	v.SetDefault("cache.result_capacity", 256)
	v.SetDefault("cache.shared_enabled", false)
	v.SetDefault("cache.stats_ttl", "15m")
	v.SetDefault("cache.key_prefix", "video-catalog")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Stats defaults
	v.SetDefault("stats.refresh_interval", "30m")
	v.SetDefault("stats.refresh_timeout", "5m")
	v.SetDefault("stats.on_startup", true)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)
}
