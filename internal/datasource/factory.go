package datasource

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/config"
)

// HTTPClientConfigFrom maps the stats API settings onto the HTTP client
func HTTPClientConfigFrom(cfg config.StatsAPIConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = cfg.Timeout()
	}
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax
	httpCfg.CircuitCooldown = cfg.CircuitCooldown()
	if cfg.UserAgent != "" {
		httpCfg.UserAgent = cfg.UserAgent
	}
	return httpCfg
}

// NewStatsProvider creates the configured stats provider. A disabled
// provider is still returned; it fails every call with ErrCodeDisabled so
// callers fall back to the static tables.
func NewStatsProvider(cfg config.StatsAPIConfig, log *logrus.Logger) *MLBStatsClient {
	var httpClient *RateLimitedHTTPClient
	if cfg.Enabled {
		httpClient = NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), log)
	}

	if cfg.Enabled {
		log.WithFields(logrus.Fields{
			"source":   mlbSourceName,
			"base_url": cfg.BaseURL,
		}).Info("Created data source")
	} else {
		log.WithField("source", mlbSourceName).Info("Skipping disabled data source")
	}

	return NewMLBStatsClient(httpClient, MLBStatsConfig{
		BaseURL: cfg.BaseURL,
		Enabled: cfg.Enabled,
		Timeout: cfg.Timeout(),
		MemoTTL: cfg.MemoTTL(),
	}, log)
}
