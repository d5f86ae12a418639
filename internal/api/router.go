package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/health"
)

// RouterConfig lists the optional surfaces mounted next to the prediction routes
type RouterConfig struct {
	Health      *health.Checker
	MetricsPath string
	Metrics     http.Handler
	Events      http.Handler
}

// NewRouter registers HTTP routes on a ServeMux and wraps them in the logging middleware.
func NewRouter(handler *Handler, cfg RouterConfig, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/predictions", handler.Predictions)
	mux.HandleFunc("GET /api/refresh", handler.Refresh)
	mux.HandleFunc("POST /api/refresh", handler.Refresh)
	mux.HandleFunc("GET /api/history", handler.History)

	if cfg.Health != nil {
		mux.HandleFunc("GET /health", cfg.Health.HandleHealth)
		mux.HandleFunc("GET /live", cfg.Health.HandleLive)
		mux.HandleFunc("GET /ready", cfg.Health.HandleReady)
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, cfg.Metrics)
	}
	if cfg.Events != nil {
		mux.Handle("GET /ws/events", cfg.Events)
	}

	return LoggingMiddleware(logger, mux)
}
