package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	mustRegister(v, "environment", validateEnvironment)
	mustRegister(v, "loglevel", validateLogLevel)
	mustRegister(v, "cachebackend", validateCacheBackend)
	mustRegister(v, "cronspec", validateCronSpec)

	return &CustomValidator{validator: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCacheBackend validates the cache backend field
func validateCacheBackend(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "file", "redis", "memory":
		return true
	default:
		return false
	}
}

// validateCronSpec accepts five-field cron expressions and @descriptors
func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "file":
		if strings.TrimSpace(cfg.Cache.Directory) == "" {
			return fmt.Errorf("cache.directory is required for the file cache backend")
		}
	case "redis":
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required for the redis cache backend")
		}
	}

	if cfg.StatsAPI.Enabled {
		if cfg.StatsAPI.BaseURL == "" {
			return fmt.Errorf("stats_api.base_url is required when the stats API is enabled")
		}
		if cfg.StatsAPI.TimeoutSeconds <= 0 {
			return fmt.Errorf("stats_api.timeout_seconds must be positive when the stats API is enabled")
		}
	}
	if cfg.StatsAPI.LiveSchedule && !cfg.StatsAPI.Enabled {
		return fmt.Errorf("stats_api.live_schedule requires stats_api.enabled")
	}

	if cfg.Scheduler.Enabled {
		if cfg.Scheduler.PrewarmSpec == "" {
			return fmt.Errorf("scheduler.prewarm_spec is required when the scheduler is enabled")
		}
		if _, err := cfg.Scheduler.Location(); err != nil {
			return fmt.Errorf("invalid scheduler.timezone %q: %w", cfg.Scheduler.Timezone, err)
		}
	}

	if cfg.Archive.Enabled {
		if cfg.Archive.DSN == "" {
			return fmt.Errorf("archive.dsn is required when the archive is enabled")
		}
		if _, err := url.Parse(cfg.Archive.DSN); err != nil {
			return fmt.Errorf("invalid archive.dsn: %w", err)
		}
	}
	if cfg.Archive.MinConnections > cfg.Archive.MaxConnections && cfg.Archive.MaxConnections > 0 {
		return fmt.Errorf("archive.min_connections cannot exceed archive.max_connections")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}

	// Validate production environment requirements
	if cfg.IsProduction() && cfg.Cache.Backend == "memory" {
		return fmt.Errorf("production environment requires a persistent cache backend (file or redis)")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "cachebackend":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: file, redis, memory\n", field)
		case "cronspec":
			errMsg += fmt.Sprintf("- Field '%s' must be a cron expression, got '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
