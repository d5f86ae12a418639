package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordCacheLookup(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("predictions", "hit"))
	RecordCacheLookup("predictions", "hit")
	after := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("predictions", "hit"))

	assert.Equal(t, before+1, after)
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name           string
		predictionType string
		rating         string
	}{
		{name: "bet", predictionType: "under_1_run_1st", rating: "Bet"},
		{name: "lean", predictionType: "over_2.5_runs_3", rating: "Lean"},
		{name: "pass", predictionType: "over_3.5_runs_3", rating: "Pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordPrediction(tt.predictionType, tt.rating)
			})
		})
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("people_search", "error"))
	RecordUpstreamRequest("people_search", "error", 0.25)
	assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("people_search", "error")))
}

func TestUpdateEventSubscribers(t *testing.T) {
	InitRegistry()

	UpdateEventSubscribers(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(EventSubscribers))
	UpdateEventSubscribers(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(EventSubscribers))
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()
	RecordHTTPRequest("/api/predictions", "200", 0.01)

	handler := Handler()
	require.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "early_innings_http_requests_total")
}

func BenchmarkRecordCacheLookup(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordCacheLookup("predictions", "hit")
	}
}
