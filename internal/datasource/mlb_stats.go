package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/models"
)

const (
	mlbSourceName = "mlb_stats_api"
	// DefaultMLBBaseURL is the public MLB Stats API root
	DefaultMLBBaseURL = "https://statsapi.mlb.com/api/v1"

	pitcherPositionCode = "1"

	endpointPeopleSearch = "people_search"
	endpointPeopleStats  = "people_stats"
	endpointSchedule     = "schedule"
)

// MLBStatsConfig configures the MLB Stats API client
type MLBStatsConfig struct {
	BaseURL string
	Enabled bool
	// Timeout bounds a whole lookup, retries included
	Timeout time.Duration
	MemoTTL time.Duration
}

// MLBStatsClient implements StatsProvider against the MLB Stats API
type MLBStatsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	timeout    time.Duration
	memo       *gocache.Cache
	logger     *logger.UpstreamLogger
}

type mlbPeopleResponse struct {
	People []struct {
		ID              int64  `json:"id"`
		FullName        string `json:"fullName"`
		PrimaryPosition struct {
			Code string `json:"code"`
		} `json:"primaryPosition"`
	} `json:"people"`
}

type mlbStatsResponse struct {
	Stats []struct {
		Splits []struct {
			Season string `json:"season"`
			Stat   struct {
				ERA string `json:"era"`
			} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

type mlbScheduleTeam struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher *struct {
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

type mlbScheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePK   int64  `json:"gamePk"`
			GameDate string `json:"gameDate"`
			Status   struct {
				AbstractGameState string `json:"abstractGameState"`
				DetailedState     string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Home mlbScheduleTeam `json:"home"`
				Away mlbScheduleTeam `json:"away"`
			} `json:"teams"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

// NewMLBStatsClient creates a new MLB Stats API client
func NewMLBStatsClient(httpClient *RateLimitedHTTPClient, cfg MLBStatsConfig, log *logrus.Logger) *MLBStatsClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultMLBBaseURL
	}
	memoTTL := cfg.MemoTTL
	if memoTTL <= 0 {
		memoTTL = time.Hour
	}
	return &MLBStatsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		enabled:    cfg.Enabled,
		timeout:    cfg.Timeout,
		memo:       gocache.New(memoTTL, memoTTL*2),
		logger:     logger.NewUpstreamLogger(log),
	}
}

// Name returns the data source name
func (c *MLBStatsClient) Name() string {
	return mlbSourceName
}

// IsEnabled returns whether this data source is enabled
func (c *MLBStatsClient) IsEnabled() bool {
	return c.enabled && c.httpClient != nil
}

// LookupPitcherERA searches for the pitcher and returns the ERA of the given season
func (c *MLBStatsClient) LookupPitcherERA(ctx context.Context, pitcherName string, season int) (float64, error) {
	if !c.IsEnabled() {
		return 0, NewDataSourceError(mlbSourceName, ErrCodeDisabled, "data source is disabled", nil)
	}

	memoKey := fmt.Sprintf("era:%s:%d", pitcherName, season)
	if v, ok := c.memo.Get(memoKey); ok {
		return v.(float64), nil
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	playerID, err := c.searchPitcher(ctx, pitcherName)
	if err != nil {
		return 0, err
	}

	era, err := c.seasonERA(ctx, playerID, pitcherName, season)
	if err != nil {
		return 0, err
	}

	c.memo.SetDefault(memoKey, era)
	return era, nil
}

func (c *MLBStatsClient) searchPitcher(ctx context.Context, pitcherName string) (int64, error) {
	q := url.Values{}
	q.Set("names", pitcherName)
	q.Set("sportIds", "1")

	var people mlbPeopleResponse
	if err := c.getJSON(ctx, endpointPeopleSearch, pitcherName, c.baseURL+"/people/search?"+q.Encode(), &people); err != nil {
		return 0, err
	}

	for _, person := range people.People {
		if person.PrimaryPosition.Code == pitcherPositionCode {
			return person.ID, nil
		}
	}
	return 0, NewDataSourceError(mlbSourceName, ErrCodeNotFound, fmt.Sprintf("no pitcher named %q", pitcherName), nil)
}

func (c *MLBStatsClient) seasonERA(ctx context.Context, playerID int64, pitcherName string, season int) (float64, error) {
	q := url.Values{}
	q.Set("stats", "season")
	q.Set("group", "pitching")
	q.Set("season", strconv.Itoa(season))

	var stats mlbStatsResponse
	endpoint := fmt.Sprintf("%s/people/%d/stats?%s", c.baseURL, playerID, q.Encode())
	if err := c.getJSON(ctx, endpointPeopleStats, pitcherName, endpoint, &stats); err != nil {
		return 0, err
	}

	if len(stats.Stats) == 0 || len(stats.Stats[0].Splits) == 0 {
		return 0, NewDataSourceError(mlbSourceName, ErrCodeNotFound, fmt.Sprintf("no %d pitching stats for %q", season, pitcherName), nil)
	}

	raw := stats.Stats[0].Splits[0].Stat.ERA
	era, err := strconv.ParseFloat(raw, 64)
	if err != nil || era < 0 {
		// the API reports "-.--" before a pitcher records an out
		return 0, NewDataSourceError(mlbSourceName, ErrCodeInvalidData, fmt.Sprintf("unusable ERA %q for %q", raw, pitcherName), err)
	}
	return era, nil
}

// FetchSchedule returns the games scheduled on date with their probable starters
func (c *MLBStatsClient) FetchSchedule(ctx context.Context, date time.Time) ([]ScheduledGame, error) {
	if !c.IsEnabled() {
		return nil, NewDataSourceError(mlbSourceName, ErrCodeDisabled, "data source is disabled", nil)
	}

	day := models.FormatDate(date)
	memoKey := "schedule:" + day
	if v, ok := c.memo.Get(memoKey); ok {
		return v.([]ScheduledGame), nil
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	q := url.Values{}
	q.Set("sportId", "1")
	q.Set("date", day)
	q.Set("hydrate", "probablePitcher,venue,team")

	var schedule mlbScheduleResponse
	if err := c.getJSON(ctx, endpointSchedule, day, c.baseURL+"/schedule?"+q.Encode(), &schedule); err != nil {
		return nil, err
	}

	games := make([]ScheduledGame, 0)
	for _, d := range schedule.Dates {
		if d.Date != "" && d.Date != day {
			continue
		}
		for _, g := range d.Games {
			game := ScheduledGame{
				GamePK:   g.GamePK,
				HomeTeam: g.Teams.Home.Team.Name,
				AwayTeam: g.Teams.Away.Team.Name,
				Venue:    g.Venue.Name,
				Status:   g.Status.DetailedState,
			}
			// postponed and suspended games report Final as their abstract state
			if game.Status == "" {
				game.Status = g.Status.AbstractGameState
			}
			if g.GameDate != "" {
				if start, err := time.Parse(time.RFC3339, g.GameDate); err == nil {
					game.StartTime = start.UTC()
				}
			}
			if g.Teams.Home.ProbablePitcher != nil {
				game.HomeStarter = g.Teams.Home.ProbablePitcher.FullName
			}
			if g.Teams.Away.ProbablePitcher != nil {
				game.AwayStarter = g.Teams.Away.ProbablePitcher.FullName
			}
			games = append(games, game)
		}
	}

	c.memo.SetDefault(memoKey, games)
	return games, nil
}

// Forget drops every memoized response
func (c *MLBStatsClient) Forget() {
	c.memo.Flush()
}

func (c *MLBStatsClient) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *MLBStatsClient) getJSON(ctx context.Context, endpoint, subject, rawURL string, dst any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, rawURL, dst)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = ErrorCode(err)
	}
	metrics.RecordUpstreamRequest(endpoint, outcome, elapsed.Seconds())
	if err == nil {
		c.logger.LogLookup(endpoint, subject, true, float64(elapsed.Microseconds())/1000)
	}
	return err
}

func (c *MLBStatsClient) doGetJSON(ctx context.Context, rawURL string, dst any) error {
	resp, err := c.httpClient.Get(ctx, rawURL)
	if err != nil {
		code := ErrCodeNetworkError
		if errors.Is(err, ErrCircuitOpen) {
			code = ErrCodeCircuitOpen
		}
		return NewDataSourceError(mlbSourceName, code, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(mlbSourceName, ErrCodeNotFound, "resource not found", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(mlbSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewDataSourceError(mlbSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return NewDataSourceError(mlbSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	return nil
}
