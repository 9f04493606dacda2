package usecase

import (
	"context"
	"errors"
	"time"

	"DormBack/internal/domain/models"
	drepo "DormBack/internal/domain/repository"
	domsvc "DormBack/internal/domain/service"
	"DormBack/pkg/cache"
	"DormBack/pkg/logger"
)

// FixtureService serves synthetic series, caching results so repeated
// fixture requests with the same parameters are not regenerated.
// Correctness does not depend on the cache: generation is deterministic,
// a miss only costs CPU.
type FixtureService struct {
	gen      domsvc.SeriesGenerator
	cache    cache.Service
	metrics  drepo.Metrics
	log      *logger.Logger
	cacheTTL time.Duration
}

// NewFixtureService creates a FixtureService. cache may be nil.
func NewFixtureService(
	gen domsvc.SeriesGenerator,
	c cache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
	cacheTTL time.Duration,
) *FixtureService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &FixtureService{gen: gen, cache: c, metrics: metrics, log: log, cacheTTL: cacheTTL}
}

// GetSeries returns the series for (seed, length, start), generating it
// on cache miss. source labels the metrics (api, job, replay).
func (f *FixtureService) GetSeries(ctx context.Context, source string, seed int64, length int, start time.Time) (*models.MarketSeries, error) {
	key := seriesCacheKey(seed, length, start)

	if f.cache != nil {
		var cached models.MarketSeries
		if err := f.cache.Get(ctx, key, &cached); err == nil && cached.Length() == length {
			return &cached, nil
		} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			f.metrics.RecordError("series_cache_get")
		}
	}

	begin := time.Now()
	s, err := f.gen.Generate(seed, length, start)
	if err != nil {
		f.metrics.RecordError("series_generate")
		return nil, err
	}
	f.metrics.RecordSeriesGenerated(source, seed)
	f.metrics.RecordLatency("series_generate", time.Since(begin).Seconds())

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, s, f.cacheTTL); err != nil {
			f.metrics.RecordError("series_cache_set")
			f.log.Warn("series cache set failed", logger.Error(err))
		}
	}
	return s, nil
}

func seriesCacheKey(seed int64, length int, start time.Time) string {
	return cache.GenerateKeyWithParams("series", seed, length, start.UTC().Format("2006-01-02"))
}
