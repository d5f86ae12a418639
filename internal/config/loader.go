package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. EARLY_INNINGS_SERVER_PORT
	EnvPrefix = "EARLY_INNINGS"
	// DefaultPath is used when no config path is given
	DefaultPath = "config/config.yaml"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables are used.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "early-innings")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.strict_prediction_type", false)
	v.SetDefault("server.events_enabled", true)

	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.directory", "cache")
	v.SetDefault("cache.predictions_ttl_seconds", 900)
	v.SetDefault("cache.reference_ttl_seconds", 3600)
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", "early-innings:")

	v.SetDefault("stats_api.enabled", false)
	v.SetDefault("stats_api.live_schedule", false)
	v.SetDefault("stats_api.base_url", "https://statsapi.mlb.com/api/v1")
	v.SetDefault("stats_api.timeout_seconds", 5)
	v.SetDefault("stats_api.max_retries", 2)
	v.SetDefault("stats_api.rate_limit", 10.0)
	v.SetDefault("stats_api.circuit_breaker_max", 5)
	v.SetDefault("stats_api.circuit_cooldown_seconds", 60)
	v.SetDefault("stats_api.memo_ttl_seconds", 3600)
	v.SetDefault("stats_api.user_agent", "early-innings/1.0")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.prewarm_spec", "*/15 * * * *")
	v.SetDefault("scheduler.days_ahead", 1)
	v.SetDefault("scheduler.timezone", "America/New_York")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.dsn", "")
	v.SetDefault("archive.max_connections", 5)
	v.SetDefault("archive.min_connections", 0)
	v.SetDefault("archive.conn_timeout_seconds", 5)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
