// Package metrics provides the centralized Prometheus registry for the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "cache_requests_total",
		Help:      "Cache lookups by cache instance and status",
	}, []string{"cache", "status"})
	CacheWriteErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "cache_write_errors_total",
		Help:      "Failed cache writes by cache instance",
	}, []string{"cache"})
	CacheClearsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "cache_clears_total",
		Help:      "Full cache clears by cache instance",
	}, []string{"cache"})
	PredictionsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "predictions_computed_total",
		Help:      "Predictions scored by prediction type and rating",
	}, []string{"type", "rating"})
	ERALookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "era_lookups_total",
		Help:      "Pitcher ERA lookups by provenance",
	}, []string{"provenance"})
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "upstream_requests_total",
		Help:      "Requests to the stats provider by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	ScheduledPrewarmsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "scheduled_prewarms_total",
		Help:      "Scheduled cache prewarm runs by outcome",
	}, []string{"outcome"})
	EventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "events_published_total",
		Help:      "Events broadcast to websocket subscribers by event type",
	}, []string{"event"})
)

// Gauge metrics
var (
	EventSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "early_innings",
		Name:      "event_subscribers",
		Help:      "Number of connected websocket subscribers",
	})
	LastRecomputeTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "early_innings",
		Name:      "last_recompute_timestamp_seconds",
		Help:      "Unix time of the last prediction recompute",
	})
)

// Histogram metrics
var (
	RecomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "early_innings",
		Name:      "recompute_duration_seconds",
		Help:      "Duration of a full prediction recompute for one date",
		Buckets:   prometheus.DefBuckets,
	})
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "early_innings",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of stats provider requests in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CacheRequestsTotal)
		registry.MustRegister(CacheWriteErrorsTotal)
		registry.MustRegister(CacheClearsTotal)
		registry.MustRegister(PredictionsComputedTotal)
		registry.MustRegister(ERALookupsTotal)
		registry.MustRegister(UpstreamRequestsTotal)
		registry.MustRegister(ScheduledPrewarmsTotal)
		registry.MustRegister(EventsPublishedTotal)

		registry.MustRegister(EventSubscribers)
		registry.MustRegister(LastRecomputeTimestamp)

		registry.MustRegister(RecomputeDuration)
		registry.MustRegister(UpstreamRequestDuration)

		registerHTTPMetrics(registry)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCacheLookup records the status of a cache read.
func RecordCacheLookup(cache, status string) {
	CacheRequestsTotal.WithLabelValues(cache, status).Inc()
}

// RecordCacheWriteError records a failed cache write.
func RecordCacheWriteError(cache string) {
	CacheWriteErrorsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheClear records a full cache clear.
func RecordCacheClear(cache string) {
	CacheClearsTotal.WithLabelValues(cache).Inc()
}

// RecordPrediction records a scored prediction.
func RecordPrediction(predictionType, rating string) {
	PredictionsComputedTotal.WithLabelValues(predictionType, rating).Inc()
}

// RecordERALookup records the provenance of an ERA lookup.
func RecordERALookup(provenance string) {
	ERALookupsTotal.WithLabelValues(provenance).Inc()
}

// RecordUpstreamRequest records a stats provider request.
func RecordUpstreamRequest(endpoint, outcome string, durationSeconds float64) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordRecompute records a full recompute for one date.
func RecordRecompute(durationSeconds float64, unixSeconds float64) {
	RecomputeDuration.Observe(durationSeconds)
	LastRecomputeTimestamp.Set(unixSeconds)
}

// RecordScheduledPrewarm records the outcome of a scheduled prewarm.
func RecordScheduledPrewarm(outcome string) {
	ScheduledPrewarmsTotal.WithLabelValues(outcome).Inc()
}

// RecordEventPublished records a broadcast event.
func RecordEventPublished(event string) {
	EventsPublishedTotal.WithLabelValues(event).Inc()
}

// UpdateEventSubscribers sets the websocket subscriber gauge.
func UpdateEventSubscribers(count float64) {
	EventSubscribers.Set(count)
}
