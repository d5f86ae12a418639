package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/early-innings/internal/config"
	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/models"
)

const scheduleBody = `{
  "dates": [{
    "date": "2025-06-14",
    "games": [{
      "gamePk": 777001,
      "gameDate": "2025-06-14T23:10:00Z",
      "status": {"abstractGameState": "Preview", "codedGameState": "S", "detailedState": "Scheduled"},
      "teams": {
        "home": {"team": {"name": "Philadelphia Phillies"}, "probablePitcher": {"fullName": "Zack Wheeler"}},
        "away": {"team": {"name": "New York Mets"}}
      },
      "venue": {"name": "Citizens Bank Park"}
    }, {
      "gamePk": 777002,
      "gameDate": "2025-06-14T23:05:00Z",
      "status": {"abstractGameState": "Final", "codedGameState": "D", "detailedState": "Postponed"},
      "teams": {
        "home": {"team": {"name": "Colorado Rockies"}},
        "away": {"team": {"name": "Los Angeles Dodgers"}}
      },
      "venue": {"name": "Coors Field"}
    }, {
      "gamePk": 777003,
      "gameDate": "2025-06-14T17:05:00Z",
      "status": {"abstractGameState": "Live"},
      "teams": {
        "home": {"team": {"name": "Chicago Cubs"}},
        "away": {"team": {"name": "St. Louis Cardinals"}}
      },
      "venue": {"name": "Wrigley Field"}
    }]
  }]
}`

func testHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	return NewRateLimitedHTTPClient(cfg, logger.Discard())
}

func newTestClient(t *testing.T, handler http.Handler) (*MLBStatsClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewMLBStatsClient(testHTTPClient(), MLBStatsConfig{
		BaseURL: server.URL,
		Enabled: true,
		Timeout: 2 * time.Second,
	}, logger.Discard())
	return client, server
}

func statsAPIMux(era string, hits *int32) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/people/search", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Query().Get("names") != "Zack Wheeler" {
			fmt.Fprint(w, `{"people": []}`)
			return
		}
		fmt.Fprint(w, `{"people": [
			{"id": 1, "fullName": "Zack Wheeler", "primaryPosition": {"code": "8"}},
			{"id": 554430, "fullName": "Zack Wheeler", "primaryPosition": {"code": "1"}}
		]}`)
	})
	mux.HandleFunc("/people/554430/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("group") != "pitching" || r.URL.Query().Get("season") != "2025" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"stats": [{"splits": [{"season": "2025", "stat": {"era": %q}}]}]}`, era)
	})
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "2025-06-14" {
			fmt.Fprint(w, `{"dates": []}`)
			return
		}
		fmt.Fprint(w, scheduleBody)
	})
	return mux
}

func TestLookupPitcherERA(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, statsAPIMux("2.98", &hits))

	era, err := client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.NoError(t, err)
	assert.Equal(t, 2.98, era)

	// memoized
	era, err = client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.NoError(t, err)
	assert.Equal(t, 2.98, era)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	client.Forget()
	_, err = client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestLookupPitcherERANotFound(t *testing.T) {
	client, _ := newTestClient(t, statsAPIMux("2.98", nil))

	_, err := client.LookupPitcherERA(context.Background(), "Nobody Special", 2025)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestLookupPitcherERAUnusableValue(t *testing.T) {
	client, _ := newTestClient(t, statsAPIMux("-.--", nil))

	_, err := client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidData, ErrorCode(err))
}

func TestLookupPitcherERAServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.Error(t, err)
	assert.Equal(t, ErrCodeServerError, ErrorCode(err))
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestLookupPitcherERATimeout(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)

	client := NewMLBStatsClient(testHTTPClient(), MLBStatsConfig{
		BaseURL: server.URL,
		Enabled: true,
		Timeout: 50 * time.Millisecond,
	}, logger.Discard())

	start := time.Now()
	_, err := client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, ErrCodeNetworkError, ErrorCode(err))
}

func TestDisabledClient(t *testing.T) {
	client := NewMLBStatsClient(nil, MLBStatsConfig{Enabled: false}, logger.Discard())

	assert.False(t, client.IsEnabled())
	assert.Equal(t, "mlb_stats_api", client.Name())

	_, err := client.LookupPitcherERA(context.Background(), "Zack Wheeler", 2025)
	assert.Equal(t, ErrCodeDisabled, ErrorCode(err))

	_, err = client.FetchSchedule(context.Background(), time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestFetchSchedule(t *testing.T) {
	client, _ := newTestClient(t, statsAPIMux("2.98", nil))

	games, err := client.FetchSchedule(context.Background(), time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 3)

	game := games[0]
	assert.Equal(t, "Scheduled", game.Status)
	assert.Equal(t, "Postponed", games[1].Status)
	assert.Equal(t, "Live", games[2].Status)
	assert.Equal(t, int64(777001), game.GamePK)
	assert.Equal(t, "Philadelphia Phillies", game.HomeTeam)
	assert.Equal(t, "New York Mets", game.AwayTeam)
	assert.Equal(t, "Citizens Bank Park", game.Venue)
	assert.Equal(t, "Zack Wheeler", game.HomeStarter)
	assert.Empty(t, game.AwayStarter)
	assert.Equal(t, time.Date(2025, 6, 14, 23, 10, 0, 0, time.UTC), game.StartTime)

	games, err = client.FetchSchedule(context.Background(), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(server.Close)

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 0
	cfg.CircuitBreakerMax = 2
	cfg.CircuitCooldown = time.Minute
	client := NewRateLimitedHTTPClient(cfg, logger.Discard())
	now := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		resp, err := client.Get(ctx, server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.True(t, client.IsOpen())

	_, err := client.Get(ctx, server.URL)
	assert.True(t, errors.Is(err, ErrCircuitOpen))

	failing.Store(false)
	now = now.Add(time.Minute)
	resp, err := client.Get(ctx, server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, client.IsOpen())
}

func TestDataSourceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDataSourceError("mlb_stats_api", ErrCodeNetworkError, "request failed", cause)

	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "unknown", ErrorCode(cause))
}

func TestNewStatsProviderFromConfig(t *testing.T) {
	cfg := config.StatsAPIConfig{
		Enabled:           true,
		BaseURL:           "https://statsapi.example.test/api/v1/",
		TimeoutSeconds:    3,
		MaxRetries:        1,
		RateLimit:         5,
		CircuitBreakerMax: 4,
		MemoTTLSeconds:    60,
	}

	httpCfg := HTTPClientConfigFrom(cfg)
	assert.Equal(t, 3*time.Second, httpCfg.Timeout)
	assert.Equal(t, 4, httpCfg.CircuitBreakerMax)
	assert.Equal(t, "early-innings/1.0", httpCfg.UserAgent)

	provider := NewStatsProvider(cfg, logger.Discard())
	assert.True(t, provider.IsEnabled())
	assert.Equal(t, "https://statsapi.example.test/api/v1", provider.baseURL)

	disabled := NewStatsProvider(config.StatsAPIConfig{}, logger.Discard())
	assert.False(t, disabled.IsEnabled())
}
