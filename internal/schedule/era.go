package schedule

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/cache"
	"github.com/yourusername/early-innings/internal/datasource"
	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/reference"
)

// ERAResult is a pitcher ERA with where it came from. Value is nil when unknown.
type ERAResult struct {
	Value      *float64          `json:"era"`
	Provenance models.Provenance `json:"source"`
}

func notFound() ERAResult {
	return ERAResult{Provenance: models.ProvenanceNotFound}
}

// ERALookup resolves pitcher ERAs: reference cache first, then the stats
// provider when enabled, then the static table.
type ERALookup struct {
	ref      *reference.Reference
	cache    *cache.TTLCache
	provider datasource.StatsProvider
	upstream *logger.UpstreamLogger
}

// NewERALookup creates a lookup. provider may be nil.
func NewERALookup(ref *reference.Reference, refCache *cache.TTLCache, provider datasource.StatsProvider, log *logrus.Logger) *ERALookup {
	return &ERALookup{
		ref:      ref,
		cache:    refCache,
		provider: provider,
		upstream: logger.NewUpstreamLogger(log),
	}
}

func eraCacheKey(team, pitcher string) string {
	return fmt.Sprintf("pitcher_era_%s_%s", team, pitcher)
}

func (l *ERALookup) liveEnabled() bool {
	return l.provider != nil && l.provider.IsEnabled()
}

// Lookup returns the ERA of pitcher for season. It never fails: an unknown
// pitcher yields a nil value with not-found provenance, which is not cached.
func (l *ERALookup) Lookup(ctx context.Context, team, pitcher string, season int) ERAResult {
	result := l.lookup(ctx, team, pitcher, season)
	metrics.RecordERALookup(string(result.Provenance))
	return result
}

func (l *ERALookup) lookup(ctx context.Context, team, pitcher string, season int) ERAResult {
	if pitcher == "" || pitcher == models.TBD {
		return notFound()
	}

	key := eraCacheKey(team, pitcher)
	var cached ERAResult
	if l.cache != nil && l.cache.Get(ctx, key, &cached).Hit() && cached.Value != nil {
		return cached
	}

	live := l.liveEnabled()
	if live {
		era, err := l.provider.LookupPitcherERA(ctx, pitcher, season)
		if err == nil {
			return l.store(ctx, key, ERAResult{Value: models.Float64Ptr(era), Provenance: models.ProvenanceOfficial})
		}
		l.upstream.LogFallback("pitcher_era", pitcher, err, "static table")
	}

	p, ok := l.ref.Pitcher(pitcher)
	if !ok || !p.HasERA() {
		return notFound()
	}

	provenance := models.ProvenanceOfficial
	if live {
		provenance = models.ProvenanceFallback
	}
	return l.store(ctx, key, ERAResult{Value: p.ERA, Provenance: provenance})
}

func (l *ERALookup) store(ctx context.Context, key string, result ERAResult) ERAResult {
	if l.cache == nil {
		return result
	}
	if err := l.cache.Put(ctx, key, result); err != nil {
		l.upstream.WithField("key", key).WithError(err).Warn("Failed to cache pitcher ERA")
	}
	return result
}
