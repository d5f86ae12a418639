package metrics

import "github.com/prometheus/client_golang/prometheus"

// HTTP server metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "early_innings",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "early_innings",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func registerHTTPMetrics(r *prometheus.Registry) {
	r.MustRegister(HTTPRequestsTotal)
	r.MustRegister(HTTPRequestDuration)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(route, code string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(route, code).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}
