package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/cache"
	"github.com/yourusername/early-innings/internal/datasource"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/reference"
)

// DefaultDisplayLocation is the timezone used to render live start times
const DefaultDisplayLocation = "America/New_York"

const liveTimeLayout = "03:04 PM"

// Schedule serves the fixture list for a date through the reference cache
type Schedule struct {
	ref          *reference.Reference
	cache        *cache.TTLCache
	provider     datasource.StatsProvider
	eras         *ERALookup
	generator    *Generator
	liveSchedule bool
	location     *time.Location
	log          *logrus.Entry
}

// Option configures a Schedule
type Option func(*Schedule)

// WithLiveSchedule makes the schedule ask the stats provider for the real
// slate before falling back to the generator
func WithLiveSchedule(enabled bool) Option {
	return func(s *Schedule) {
		s.liveSchedule = enabled
	}
}

// WithLocation sets the timezone live start times are rendered in
func WithLocation(loc *time.Location) Option {
	return func(s *Schedule) {
		if loc != nil {
			s.location = loc
		}
	}
}

// New creates a Schedule. refCache and provider may be nil.
func New(ref *reference.Reference, refCache *cache.TTLCache, provider datasource.StatsProvider, log *logrus.Logger, opts ...Option) *Schedule {
	eras := NewERALookup(ref, refCache, provider, log)
	s := &Schedule{
		ref:       ref,
		cache:     refCache,
		provider:  provider,
		eras:      eras,
		generator: NewGenerator(ref, eras),
		location:  time.UTC,
		log:       log.WithField("component", "schedule"),
	}
	if loc, err := time.LoadLocation(DefaultDisplayLocation); err == nil {
		s.location = loc
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func gamesCacheKey(date string) string {
	return "games_" + date
}

// ForDate returns the fixtures for date. A cached slate is reused unless
// forceRefresh is set. Only context cancellation is reported as an error.
func (s *Schedule) ForDate(ctx context.Context, date time.Time, forceRefresh bool) ([]models.GameFixture, error) {
	day := models.FormatDate(date)
	key := gamesCacheKey(day)

	if !forceRefresh && s.cache != nil {
		var cached []models.GameFixture
		if s.cache.Get(ctx, key, &cached).Hit() {
			return cached, nil
		}
	}

	fixtures := s.live(ctx, date)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		fixtures = s.generator.Generate(ctx, date)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, fixtures); err != nil {
			s.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Failed to cache fixtures")
		}
	}
	return fixtures, nil
}

func (s *Schedule) live(ctx context.Context, date time.Time) []models.GameFixture {
	if !s.liveSchedule || s.provider == nil || !s.provider.IsEnabled() {
		return nil
	}

	games, err := s.provider.FetchSchedule(ctx, date)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			s.log.WithFields(logrus.Fields{
				"date":  models.FormatDate(date),
				"error": err.Error(),
			}).Warn("Live schedule unavailable, generating fixtures")
		}
		return nil
	}

	day := models.FormatDate(date)
	fixtures := make([]models.GameFixture, 0, len(games))
	for _, game := range games {
		if problems := ValidateScheduledGame(game, date, s.location); len(problems) > 0 {
			s.log.WithFields(logrus.Fields{
				"game_pk":  game.GamePK,
				"problems": problems,
			}).Debug("Skipping unusable scheduled game")
			continue
		}
		fixture, ok := s.fromScheduled(day, game)
		if !ok {
			s.log.WithFields(logrus.Fields{
				"home": game.HomeTeam,
				"away": game.AwayTeam,
			}).Debug("Skipping game with unknown team")
			continue
		}
		fillERAs(ctx, s.eras, &fixture, date.Year())
		fixtures = append(fixtures, fixture)
	}

	if len(fixtures) == 0 {
		s.log.WithField("date", day).Info("Live schedule is empty, generating fixtures")
	}
	return fixtures
}

func (s *Schedule) fromScheduled(day string, game datasource.ScheduledGame) (models.GameFixture, bool) {
	home, ok := s.ref.MatchTeam(game.HomeTeam)
	if !ok {
		return models.GameFixture{}, false
	}
	away, ok := s.ref.MatchTeam(game.AwayTeam)
	if !ok {
		return models.GameFixture{}, false
	}

	stadium := game.Venue
	if stadium == "" {
		stadium = home.Stadium
	}

	startTime := models.TBD
	if !game.StartTime.IsZero() {
		startTime = game.StartTime.In(s.location).Format(liveTimeLayout)
	}

	return models.GameFixture{
		Date:        day,
		HomeTeam:    home.Name,
		AwayTeam:    away.Name,
		Stadium:     stadium,
		Time:        startTime,
		HomePitcher: starterOrTBD(game.HomeStarter),
		AwayPitcher: starterOrTBD(game.AwayStarter),
		Source:      models.FixtureSourceLive,
	}, true
}

func starterOrTBD(name string) string {
	if name == "" {
		return models.TBD
	}
	return name
}
