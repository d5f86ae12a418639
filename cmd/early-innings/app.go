package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/cache"
	"github.com/yourusername/early-innings/internal/config"
	"github.com/yourusername/early-innings/internal/database"
	"github.com/yourusername/early-innings/internal/datasource"
	"github.com/yourusername/early-innings/internal/events"
	"github.com/yourusername/early-innings/internal/reference"
	"github.com/yourusername/early-innings/internal/repository"
	"github.com/yourusername/early-innings/internal/schedule"
	"github.com/yourusername/early-innings/internal/scoring"
	"github.com/yourusername/early-innings/internal/service"
)

// application holds the wired dependencies shared by every command
type application struct {
	cfg         *config.Config
	log         *logrus.Logger
	location    *time.Location
	predictions *cache.TTLCache
	reference   *cache.TTLCache
	provider    *datasource.MLBStatsClient
	db          *database.DB
	repos       *repository.Repositories
	redis       *redis.Client
	service     *service.PredictionService
}

func newApplication(ctx context.Context, cfg *config.Config, log *logrus.Logger, publisher events.Publisher) (*application, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	app := &application{cfg: cfg, log: log, location: loc}

	if cfg.Cache.Backend == "redis" {
		app.redis, err = cache.ConnectRedis(ctx, cfg.Cache.Redis.Address, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			return nil, err
		}
	}

	predBackend, err := app.cacheBackend("predictions", cfg.Cache.PredictionsTTL())
	if err != nil {
		app.Close()
		return nil, err
	}
	refBackend, err := app.cacheBackend("reference", cfg.Cache.ReferenceTTL())
	if err != nil {
		app.Close()
		return nil, err
	}
	app.predictions = cache.New("predictions", predBackend, cfg.Cache.PredictionsTTL(), log)
	app.reference = cache.New("reference", refBackend, cfg.Cache.ReferenceTTL(), log)

	app.provider = datasource.NewStatsProvider(cfg.StatsAPI, log)

	opts := []service.Option{
		service.WithPublisher(publisher),
		service.WithUpstreamMemo(app.provider),
	}
	if cfg.Archive.Enabled {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		app.db, err = database.Initialize(dbCtx, cfg)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to archive: %w", err)
		}
		app.repos, err = repository.NewRepositories(app.db)
		if err != nil {
			app.Close()
			return nil, err
		}
		opts = append(opts, service.WithArchive(app.repos.PredictionSets))
		log.Info("Prediction archive connected")
	}

	ref := reference.Default()
	sched := schedule.New(ref, app.reference, app.provider, log,
		schedule.WithLiveSchedule(cfg.StatsAPI.LiveSchedule),
		schedule.WithLocation(loc),
	)
	app.service = service.NewPredictionService(sched, scoring.NewScorer(ref), app.predictions, app.reference, log, opts...)

	log.WithFields(logrus.Fields{
		"cache_backend":   cfg.Cache.Backend,
		"stats_api":       app.provider.IsEnabled(),
		"live_schedule":   cfg.StatsAPI.LiveSchedule,
		"archive":         cfg.Archive.Enabled,
		"predictions_ttl": cfg.Cache.PredictionsTTL().String(),
	}).Debug("Application wired")

	return app, nil
}

// cacheBackend gives every cache instance its own storage so clearing one never touches the other
func (a *application) cacheBackend(name string, ttl time.Duration) (cache.Backend, error) {
	switch a.cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisBackend(a.redis, a.cfg.Cache.Redis.KeyPrefix+name+":", ttl), nil
	case "memory":
		return cache.NewMemoryBackend(ttl), nil
	default:
		return cache.NewFileBackend(filepath.Join(a.cfg.Cache.Directory, name))
	}
}

// today returns the current date in the configured timezone
func (a *application) today() time.Time {
	local := time.Now().In(a.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Close releases connections held by the application
func (a *application) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close redis client")
		}
	}
}
