package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/early-innings/internal/cache"
	"github.com/yourusername/early-innings/internal/datasource"
	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/reference"
)

type fakeProvider struct {
	enabled     bool
	eras        map[string]float64
	eraErr      error
	games       []datasource.ScheduledGame
	scheduleErr error
	eraCalls    int
	schedCalls  int
}

func (f *fakeProvider) LookupPitcherERA(_ context.Context, name string, _ int) (float64, error) {
	f.eraCalls++
	if f.eraErr != nil {
		return 0, f.eraErr
	}
	era, ok := f.eras[name]
	if !ok {
		return 0, datasource.NewDataSourceError("fake", datasource.ErrCodeNotFound, name, nil)
	}
	return era, nil
}

func (f *fakeProvider) FetchSchedule(_ context.Context, _ time.Time) ([]datasource.ScheduledGame, error) {
	f.schedCalls++
	return f.games, f.scheduleErr
}

func (f *fakeProvider) Name() string    { return "fake" }
func (f *fakeProvider) IsEnabled() bool { return f.enabled }

func newRefCache() *cache.TTLCache {
	return cache.New("reference", cache.NewMemoryBackend(time.Hour), time.Hour, logger.Discard())
}

func smallReference(t *testing.T) *reference.Reference {
	t.Helper()
	era := models.Float64Ptr
	ref, err := reference.New(reference.Data{
		Teams: []models.Team{
			{Name: "Colorado Rockies", Abbreviation: "COL", Stadium: "Coors Field"},
			{Name: "Los Angeles Dodgers", Abbreviation: "LAD", Stadium: "Dodger Stadium"},
			{Name: "New York Mets", Abbreviation: "NYM", Stadium: "Citi Field"},
			{Name: "Philadelphia Phillies", Abbreviation: "PHI", Stadium: "Citizens Bank Park"},
		},
		Pitchers: []models.Pitcher{
			{Name: "Kyle Freeland", Team: "Colorado Rockies", ERA: era(4.20)},
			{Name: "Tyler Glasnow", Team: "Los Angeles Dodgers", ERA: era(3.80)},
			{Name: "Zack Wheeler", Team: "Philadelphia Phillies"},
		},
		BallparkFactors: map[string]float64{
			"Coors Field":        1.3,
			"Dodger Stadium":     0.95,
			"Citi Field":         0.95,
			"Citizens Bank Park": 1.15,
		},
	})
	require.NoError(t, err)
	return ref
}

var generatedTime = regexp.MustCompile(`^(12|01|04|06|07|08|10|11):(00|05|10|35|40) (AM|PM)$`)

func TestGameCount(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 10},
		{time.Tuesday, 10},
		{time.Wednesday, 10},
		{time.Thursday, 10},
		{time.Friday, 15},
		{time.Saturday, 15},
		{time.Sunday, 14},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, GameCount(tt.day))
		})
	}
}

func TestFormatGameTime(t *testing.T) {
	assert.Equal(t, "12:05 AM", formatGameTime(12, 5))
	assert.Equal(t, "07:40 PM", formatGameTime(7, 40))
	assert.Equal(t, "01:00 PM", formatGameTime(1, 0))
}

func TestGenerateIsDeterministic(t *testing.T) {
	ref := reference.Default()
	gen := NewGenerator(ref, NewERALookup(ref, nil, nil, logger.Discard()))
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC) // Saturday

	first := gen.Generate(context.Background(), date)
	second := gen.Generate(context.Background(), date)

	require.Len(t, first, 15)
	assert.Equal(t, first, second)

	other := gen.Generate(context.Background(), date.AddDate(0, 0, 1))
	assert.Len(t, other, 14)
	assert.NotEqual(t, first[0:14], other)
}

func TestGenerateFixtureShape(t *testing.T) {
	ref := reference.Default()
	gen := NewGenerator(ref, NewERALookup(ref, nil, nil, logger.Discard()))
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // Monday

	fixtures := gen.Generate(context.Background(), date)
	require.Len(t, fixtures, 10)

	seen := map[string]bool{}
	for _, f := range fixtures {
		assert.Equal(t, "2025-06-16", f.Date)
		assert.NotEqual(t, f.HomeTeam, f.AwayTeam)
		assert.False(t, seen[f.HomeTeam], "team %s plays twice", f.HomeTeam)
		assert.False(t, seen[f.AwayTeam], "team %s plays twice", f.AwayTeam)
		seen[f.HomeTeam], seen[f.AwayTeam] = true, true

		assert.Equal(t, ref.StadiumFor(f.HomeTeam), f.Stadium)
		assert.Regexp(t, generatedTime, f.Time)
		assert.Equal(t, models.FixtureSourceGenerated, f.Source)
		assert.Equal(t, models.FormatERA(f.HomeERAValue), f.HomeERA)
		assert.Equal(t, models.FormatERA(f.AwayERAValue), f.AwayERA)

		if f.HomePitcher != models.TBD {
			p, ok := ref.Pitcher(f.HomePitcher)
			require.True(t, ok)
			assert.Equal(t, f.HomeTeam, p.Team)
		}
	}
}

func TestGenerateEmptyRosterIsTBD(t *testing.T) {
	ref := smallReference(t)
	gen := NewGenerator(ref, NewERALookup(ref, nil, nil, logger.Discard()))

	fixtures := gen.Generate(context.Background(), time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	require.Len(t, fixtures, 2, "four teams make at most two games")

	for _, f := range fixtures {
		for _, side := range []struct {
			team, pitcher, era string
			source             models.Provenance
		}{
			{f.HomeTeam, f.HomePitcher, f.HomeERA, f.HomeERASource},
			{f.AwayTeam, f.AwayPitcher, f.AwayERA, f.AwayERASource},
		} {
			switch side.team {
			case "New York Mets":
				assert.Equal(t, models.TBD, side.pitcher)
				assert.Equal(t, models.NotAvailable, side.era)
				assert.Equal(t, models.ProvenanceNotFound, side.source)
			case "Philadelphia Phillies":
				assert.Equal(t, "Zack Wheeler", side.pitcher)
				assert.Equal(t, models.NotAvailable, side.era)
				assert.Equal(t, models.ProvenanceNotFound, side.source)
			default:
				assert.NotEqual(t, models.NotAvailable, side.era)
				assert.Equal(t, models.ProvenanceOfficial, side.source)
			}
		}
	}
}

func TestERALookupProvenance(t *testing.T) {
	ctx := context.Background()
	upstreamDown := datasource.NewDataSourceError("fake", datasource.ErrCodeServerError, "boom", nil)

	tests := []struct {
		name     string
		provider *fakeProvider
		pitcher  string
		wantERA  *float64
		wantProv models.Provenance
	}{
		{"static table without provider", nil, "Kyle Freeland", models.Float64Ptr(4.20), models.ProvenanceOfficial},
		{"disabled provider uses table", &fakeProvider{enabled: false}, "Kyle Freeland", models.Float64Ptr(4.20), models.ProvenanceOfficial},
		{"live value", &fakeProvider{enabled: true, eras: map[string]float64{"Kyle Freeland": 5.01}}, "Kyle Freeland", models.Float64Ptr(5.01), models.ProvenanceOfficial},
		{"live failure falls back", &fakeProvider{enabled: true, eraErr: upstreamDown}, "Kyle Freeland", models.Float64Ptr(4.20), models.ProvenanceFallback},
		{"unknown ERA in table", nil, "Zack Wheeler", nil, models.ProvenanceNotFound},
		{"unknown pitcher", &fakeProvider{enabled: true, eraErr: upstreamDown}, "Nobody", nil, models.ProvenanceNotFound},
		{"tbd", &fakeProvider{enabled: true}, models.TBD, nil, models.ProvenanceNotFound},
		{"empty", nil, "", nil, models.ProvenanceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var provider datasource.StatsProvider
			if tt.provider != nil {
				provider = tt.provider
			}
			lookup := NewERALookup(smallReference(t), newRefCache(), provider, logger.Discard())

			got := lookup.Lookup(ctx, "Colorado Rockies", tt.pitcher, 2025)
			assert.Equal(t, tt.wantProv, got.Provenance)
			if tt.wantERA == nil {
				assert.Nil(t, got.Value)
			} else {
				require.NotNil(t, got.Value)
				assert.InDelta(t, *tt.wantERA, *got.Value, 1e-9)
			}
		})
	}
}

func TestERALookupCachesResolvedValues(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{enabled: true, eras: map[string]float64{"Kyle Freeland": 5.01}}
	lookup := NewERALookup(smallReference(t), newRefCache(), provider, logger.Discard())

	first := lookup.Lookup(ctx, "Colorado Rockies", "Kyle Freeland", 2025)
	provider.eras["Kyle Freeland"] = 9.99
	second := lookup.Lookup(ctx, "Colorado Rockies", "Kyle Freeland", 2025)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.eraCalls)
}

func TestERALookupDoesNotCacheNotFound(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{enabled: true, eras: map[string]float64{}}
	lookup := NewERALookup(smallReference(t), newRefCache(), provider, logger.Discard())

	assert.Nil(t, lookup.Lookup(ctx, "Philadelphia Phillies", "Zack Wheeler", 2025).Value)
	provider.eras["Zack Wheeler"] = 2.95
	got := lookup.Lookup(ctx, "Philadelphia Phillies", "Zack Wheeler", 2025)

	require.NotNil(t, got.Value)
	assert.InDelta(t, 2.95, *got.Value, 1e-9)
	assert.Equal(t, 2, provider.eraCalls)
}

func TestScheduleForDateUsesCache(t *testing.T) {
	ctx := context.Background()
	s := New(reference.Default(), newRefCache(), nil, logger.Discard())
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	first, err := s.ForDate(ctx, date, false)
	require.NoError(t, err)
	second, err := s.ForDate(ctx, date, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	forced, err := s.ForDate(ctx, date, true)
	require.NoError(t, err)
	assert.Equal(t, first, forced, "generated fixtures are reproducible")
}

func TestScheduleLiveSlate(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{
		enabled: true,
		eras:    map[string]float64{"Kyle Freeland": 4.80},
		games: []datasource.ScheduledGame{
			{
				GamePK:      1,
				HomeTeam:    "Colorado Rockies",
				AwayTeam:    "Los Angeles Dodgers",
				Venue:       "Coors Field",
				StartTime:   time.Date(2025, 6, 14, 0, 40, 0, 0, time.UTC),
				HomeStarter: "Kyle Freeland",
			},
			{GamePK: 2, HomeTeam: "Montreal Expos", AwayTeam: "New York Mets"},
		},
	}
	loc, err := time.LoadLocation(DefaultDisplayLocation)
	require.NoError(t, err)

	s := New(smallReference(t), newRefCache(), provider, logger.Discard(), WithLiveSchedule(true), WithLocation(loc))
	fixtures, err := s.ForDate(ctx, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), false)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	f := fixtures[0]
	assert.Equal(t, models.FixtureSourceLive, f.Source)
	assert.Equal(t, "08:40 PM", f.Time)
	assert.Equal(t, "Coors Field", f.Stadium)
	assert.Equal(t, "Kyle Freeland", f.HomePitcher)
	assert.Equal(t, "4.80", f.HomeERA)
	assert.Equal(t, models.TBD, f.AwayPitcher)
	assert.Equal(t, models.ProvenanceNotFound, f.AwayERASource)
}

func TestScheduleLiveFailureFallsBackToGenerator(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{
		enabled:     true,
		scheduleErr: datasource.NewDataSourceError("fake", datasource.ErrCodeNetworkError, "down", errors.New("dial")),
		eraErr:      errors.New("down"),
	}
	s := New(reference.Default(), newRefCache(), provider, logger.Discard(), WithLiveSchedule(true))

	fixtures, err := s.ForDate(ctx, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), false)
	require.NoError(t, err)
	require.Len(t, fixtures, 10)
	assert.Equal(t, 1, provider.schedCalls)
	for _, f := range fixtures {
		assert.Equal(t, models.FixtureSourceGenerated, f.Source)
		if f.HomeERAValue != nil {
			assert.Equal(t, models.ProvenanceFallback, f.HomeERASource)
		}
	}
}

func TestScheduleLiveDisabledSkipsProvider(t *testing.T) {
	provider := &fakeProvider{enabled: true}
	s := New(reference.Default(), nil, provider, logger.Discard())

	_, err := s.ForDate(context.Background(), time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), false)
	require.NoError(t, err)
	assert.Zero(t, provider.schedCalls)
}

func TestScheduleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(reference.Default(), newRefCache(), nil, logger.Discard())
	_, err := s.ForDate(ctx, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateScheduledGame(t *testing.T) {
	ny, err := time.LoadLocation(DefaultDisplayLocation)
	require.NoError(t, err)
	date := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 14, 0, 40, 0, 0, time.UTC) // 20:40 on the 13th in New York

	tests := []struct {
		name     string
		game     datasource.ScheduledGame
		problems int
	}{
		{"valid", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", StartTime: evening}, 0},
		{"no start time", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers"}, 0},
		{"missing teams", datasource.ScheduledGame{}, 2},
		{"same team", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "colorado rockies"}, 1},
		{"postponed", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", Status: "Postponed"}, 1},
		{"suspended with reason", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", Status: "Suspended: Rain"}, 1},
		{"cancelled", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", Status: "Cancelled"}, 1},
		{"final is playable", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", Status: "Final"}, 0},
		{"wrong day", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", StartTime: evening.Add(24 * time.Hour)}, 1},
		{"shared starter", datasource.ScheduledGame{HomeTeam: "Colorado Rockies", AwayTeam: "Los Angeles Dodgers", HomeStarter: "Kyle Freeland", AwayStarter: "Kyle Freeland"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidateScheduledGame(tt.game, date, ny), tt.problems)
		})
	}
}

const postponedSlate = `{
  "dates": [{
    "date": "2025-06-13",
    "games": [{
      "gamePk": 1,
      "gameDate": "2025-06-14T00:40:00Z",
      "status": {"abstractGameState": "Preview", "codedGameState": "S", "detailedState": "Scheduled"},
      "teams": {
        "home": {"team": {"name": "Colorado Rockies"}, "probablePitcher": {"fullName": "Kyle Freeland"}},
        "away": {"team": {"name": "Los Angeles Dodgers"}}
      },
      "venue": {"name": "Coors Field"}
    }, {
      "gamePk": 2,
      "gameDate": "2025-06-13T23:05:00Z",
      "status": {"abstractGameState": "Final", "codedGameState": "D", "detailedState": "Postponed"},
      "teams": {
        "home": {"team": {"name": "Philadelphia Phillies"}},
        "away": {"team": {"name": "New York Mets"}}
      },
      "venue": {"name": "Citizens Bank Park"}
    }]
  }]
}`

func TestScheduleLiveSlateSkipsPostponedGames(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, postponedSlate)
	})
	mux.HandleFunc("/people/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"people": []}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.MaxRetries = 0
	httpCfg.RateLimit = 0
	client := datasource.NewMLBStatsClient(datasource.NewRateLimitedHTTPClient(httpCfg, logger.Discard()), datasource.MLBStatsConfig{
		BaseURL: server.URL,
		Enabled: true,
		Timeout: 2 * time.Second,
	}, logger.Discard())

	loc, err := time.LoadLocation(DefaultDisplayLocation)
	require.NoError(t, err)

	s := New(smallReference(t), newRefCache(), client, logger.Discard(), WithLiveSchedule(true), WithLocation(loc))
	fixtures, err := s.ForDate(context.Background(), time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), false)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, models.FixtureSourceLive, fixtures[0].Source)
	assert.Equal(t, "Colorado Rockies", fixtures[0].HomeTeam)
	assert.Equal(t, "Los Angeles Dodgers", fixtures[0].AwayTeam)
}
