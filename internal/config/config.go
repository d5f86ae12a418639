// Package config provides configuration management for the early-innings service.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	StatsAPI  StatsAPIConfig  `mapstructure:"stats_api"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	// StrictPredictionType rejects unknown prediction types instead of
	// falling back to under_1_run_1st
	StrictPredictionType bool `mapstructure:"strict_prediction_type"`
	EventsEnabled        bool `mapstructure:"events_enabled"`
}

// CacheConfig represents the two TTL caches
type CacheConfig struct {
	Backend               string      `mapstructure:"backend" validate:"required,cachebackend"`
	Directory             string      `mapstructure:"directory"`
	PredictionsTTLSeconds int         `mapstructure:"predictions_ttl_seconds" validate:"required,gt=0"`
	ReferenceTTLSeconds   int         `mapstructure:"reference_ttl_seconds" validate:"required,gt=0"`
	Redis                 RedisConfig `mapstructure:"redis"`
}

// RedisConfig represents the redis cache backend connection
type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// StatsAPIConfig represents the external MLB stats provider
type StatsAPIConfig struct {
	Enabled                bool    `mapstructure:"enabled"`
	LiveSchedule           bool    `mapstructure:"live_schedule"`
	BaseURL                string  `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds         int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries             int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RateLimit              float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax      int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
	CircuitCooldownSeconds int     `mapstructure:"circuit_cooldown_seconds" validate:"gte=0"`
	MemoTTLSeconds         int     `mapstructure:"memo_ttl_seconds" validate:"gte=0"`
	UserAgent              string  `mapstructure:"user_agent"`
}

// SchedulerConfig represents the cache prewarm schedule
type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	PrewarmSpec string `mapstructure:"prewarm_spec" validate:"omitempty,cronspec"`
	DaysAhead   int    `mapstructure:"days_ahead" validate:"gte=0,lte=7"`
	Timezone    string `mapstructure:"timezone"`
}

// ArchiveConfig represents the optional Postgres prediction archive
type ArchiveConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	DSN                string `mapstructure:"dsn"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MinConnections     int    `mapstructure:"min_connections" validate:"gte=0"`
	ConnTimeoutSeconds int    `mapstructure:"conn_timeout_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Address returns the host:port the HTTP server listens on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadTimeout returns the server read timeout
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may take
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// PredictionsTTL returns the TTL of the prediction aggregate cache
func (c CacheConfig) PredictionsTTL() time.Duration {
	return time.Duration(c.PredictionsTTLSeconds) * time.Second
}

// ReferenceTTL returns the TTL of the reference lookup cache
func (c CacheConfig) ReferenceTTL() time.Duration {
	return time.Duration(c.ReferenceTTLSeconds) * time.Second
}

// Timeout returns the bound on a single upstream lookup
func (s StatsAPIConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CircuitCooldown returns how long the circuit breaker stays open
func (s StatsAPIConfig) CircuitCooldown() time.Duration {
	return time.Duration(s.CircuitCooldownSeconds) * time.Second
}

// MemoTTL returns how long upstream responses are memoized in process
func (s StatsAPIConfig) MemoTTL() time.Duration {
	return time.Duration(s.MemoTTLSeconds) * time.Second
}

// Location returns the scheduler time zone, UTC when unset
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// ConnTimeout returns the archive connection timeout
func (a ArchiveConfig) ConnTimeout() time.Duration {
	return time.Duration(a.ConnTimeoutSeconds) * time.Second
}
