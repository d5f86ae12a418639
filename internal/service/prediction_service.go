// Package service orchestrates fixtures, scoring and caching into the
// per-date prediction sets served by the API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/cache"
	"github.com/yourusername/early-innings/internal/events"
	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/repository"
	"github.com/yourusername/early-innings/internal/schedule"
	"github.com/yourusername/early-innings/internal/scoring"
)

// DefaultHistoryLimit bounds archived date listings when no limit is given
const DefaultHistoryLimit = 30

var errArchiveDisabled = fmt.Errorf("%w: prediction archive is disabled", models.ErrNotFound)

// Forgetter drops memoized upstream responses
type Forgetter interface {
	Forget()
}

// RefreshResult reports which caches a refresh emptied
type RefreshResult struct {
	Cleared []string `json:"cleared"`
}

// PredictionService computes and caches the prediction set of each date.
// One cache entry per date holds every prediction type.
type PredictionService struct {
	schedule    *schedule.Schedule
	scorer      *scoring.Scorer
	predictions *cache.TTLCache
	reference   *cache.TTLCache
	archive     repository.PredictionSetRepository
	memo        Forgetter
	publisher   events.Publisher
	now         func() time.Time
	log         *logger.PredictionLogger
	audit       *logger.AuditLogger
}

// Option configures a PredictionService
type Option func(*PredictionService)

// WithArchive stores every recomputed set in repo
func WithArchive(repo repository.PredictionSetRepository) Option {
	return func(s *PredictionService) {
		s.archive = repo
	}
}

// WithPublisher sends lifecycle events to p
func WithPublisher(p events.Publisher) Option {
	return func(s *PredictionService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithUpstreamMemo makes Refresh also drop the stats provider's memo
func WithUpstreamMemo(f Forgetter) Option {
	return func(s *PredictionService) {
		s.memo = f
	}
}

// WithClock replaces the wall clock used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(s *PredictionService) {
		s.now = now
	}
}

// NewPredictionService creates the orchestrator. predictions and reference
// are distinct cache instances.
func NewPredictionService(
	sched *schedule.Schedule,
	scorer *scoring.Scorer,
	predictions *cache.TTLCache,
	reference *cache.TTLCache,
	log *logrus.Logger,
	opts ...Option,
) *PredictionService {
	s := &PredictionService{
		schedule:    sched,
		scorer:      scorer,
		predictions: predictions,
		reference:   reference,
		publisher:   events.Nop{},
		now:         time.Now,
		log:         logger.NewPredictionLogger(log),
		audit:       logger.NewAuditLogger(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func predictionsCacheKey(date string) string {
	return "all_predictions_" + date
}

// PredictionsFor returns the predictions of type t for date. The slice is
// empty, never nil, when the date has no fixtures.
func (s *PredictionService) PredictionsFor(ctx context.Context, date time.Time, t models.PredictionType) ([]models.Prediction, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w %q", models.ErrInvalidPredictionType, string(t))
	}

	set, err := s.PredictionSet(ctx, date)
	if err != nil {
		return nil, err
	}
	return set.ForType(t), nil
}

// PredictionSet returns every prediction type for date, from cache when fresh
func (s *PredictionService) PredictionSet(ctx context.Context, date time.Time) (*models.PredictionSet, error) {
	day := models.FormatDate(date)

	var cached models.PredictionSet
	if s.predictions.Get(ctx, predictionsCacheKey(day), &cached).Hit() {
		s.log.LogCacheHit(day, "all")
		return &cached, nil
	}
	return s.Recompute(ctx, date)
}

// Recompute rebuilds the set for date, stores it and announces it.
// Cache and archive failures are logged; the set is still returned.
func (s *PredictionService) Recompute(ctx context.Context, date time.Time) (*models.PredictionSet, error) {
	start := time.Now()
	day := models.FormatDate(date)

	fixtures, err := s.schedule.ForDate(ctx, date, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures for %s: %w", day, err)
	}

	set := &models.PredictionSet{
		Date:        day,
		GeneratedAt: s.now().UTC(),
		Predictions: make(map[models.PredictionType][]models.Prediction, len(models.PredictionTypes)),
	}
	ratings := make(map[string]int)
	total := 0
	for _, t := range models.PredictionTypes {
		preds := make([]models.Prediction, 0, len(fixtures))
		for _, fixture := range fixtures {
			p, err := s.scorer.Score(fixture, t)
			if err != nil {
				return nil, err
			}
			ratings[string(p.Rating)]++
			preds = append(preds, p)
		}
		set.Predictions[t] = preds
		total += len(preds)
	}

	key := predictionsCacheKey(day)
	if err := s.predictions.Put(ctx, key, set); err != nil {
		s.log.LogCacheWriteFailure(key, err)
	}

	if s.archive != nil {
		if err := s.archive.Save(ctx, set); err != nil {
			s.log.LogArchiveFailure(day, err)
		}
	}

	source := "none"
	if len(fixtures) > 0 {
		source = string(fixtures[0].Source)
	}

	elapsed := time.Since(start)
	metrics.RecordRecompute(elapsed.Seconds(), float64(set.GeneratedAt.Unix()))
	s.log.LogRecompute(day, len(fixtures), total, source, float64(elapsed.Microseconds())/1000)

	s.publisher.Publish(events.NewEvent(events.TypePredictionsUpdated, events.PredictionsUpdated{
		Date:          day,
		Fixtures:      len(fixtures),
		FixtureSource: source,
		Counts:        ratings,
	}))
	return set, nil
}

// Refresh empties the prediction and reference caches. Both are cleared even
// when the first one fails.
func (s *PredictionService) Refresh(ctx context.Context) (RefreshResult, error) {
	var (
		result RefreshResult
		errs   []error
	)
	for _, c := range []*cache.TTLCache{s.predictions, s.reference} {
		if c == nil {
			continue
		}
		err := c.ClearAll(ctx)
		s.audit.LogCacheCleared(c.Name(), err)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result.Cleared = append(result.Cleared, c.Name())
	}

	if s.memo != nil {
		s.memo.Forget()
	}

	s.log.LogRefresh(result.Cleared)
	s.publisher.Publish(events.NewEvent(events.TypeCacheCleared, events.CacheCleared{Caches: result.Cleared}))
	return result, errors.Join(errs...)
}

// Prewarm recomputes the sets of dates so the next requests are cache hits
func (s *PredictionService) Prewarm(ctx context.Context, dates ...time.Time) error {
	var errs []error
	days := make([]string, 0, len(dates))
	for _, date := range dates {
		days = append(days, models.FormatDate(date))
		if _, err := s.Recompute(ctx, date); err != nil {
			errs = append(errs, err)
		}
	}
	s.log.LogPrewarm(days, len(errs))
	return errors.Join(errs...)
}

// History returns the archived set for date. Without an archive every date is not found.
func (s *PredictionService) History(ctx context.Context, date time.Time) (*models.PredictionSet, error) {
	if s.archive == nil {
		return nil, errArchiveDisabled
	}
	return s.archive.GetByDate(ctx, date)
}

// ArchivedDates lists up to limit archived dates, newest first
func (s *PredictionService) ArchivedDates(ctx context.Context, limit int) ([]time.Time, error) {
	if s.archive == nil {
		return nil, errArchiveDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.archive.ListDates(ctx, limit)
}

// HistoryByRating returns the archived predictions of one rating on date, best first
func (s *PredictionService) HistoryByRating(ctx context.Context, date time.Time, rating models.Rating) ([]repository.ArchivedPrediction, error) {
	if s.archive == nil {
		return nil, errArchiveDisabled
	}
	preds, err := s.archive.GetByRating(ctx, date, rating)
	if err != nil {
		return nil, err
	}
	if preds == nil {
		preds = []repository.ArchivedPrediction{}
	}
	return preds, nil
}
