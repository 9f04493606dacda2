package usecase

import (
	"context"
	"fmt"
	"time"

	"DormBack/internal/domain/models"
	drepo "DormBack/internal/domain/repository"
)

// SeriesProcessor routes generated fixture points to the configured backend.
type SeriesProcessor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
	batchSz int
}

// NewSeriesProcessor creates a new SeriesProcessor instance.
func NewSeriesProcessor(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
) *SeriesProcessor {
	if batchSz <= 0 {
		batchSz = 500
	}
	return &SeriesProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
	}
}

// Backend returns the configured backend name.
func (p *SeriesProcessor) Backend() string { return p.backend }

// ProcessSeries routes all points of a series to the configured backend
// in batches. Backend "none" keeps the series in-process only.
func (p *SeriesProcessor) ProcessSeries(ctx context.Context, runID string, s *models.MarketSeries) error {
	if s == nil {
		return fmt.Errorf("series is nil")
	}
	if p.backend == "none" {
		return nil
	}

	start := time.Now()
	for lo := 0; lo < len(s.Points); lo += p.batchSz {
		hi := lo + p.batchSz
		if hi > len(s.Points) {
			hi = len(s.Points)
		}

		var err error
		switch p.backend {
		case "kafka":
			err = p.pub.PublishBatch(ctx, runID, s.Points[lo:hi])
		case "clickhouse":
			err = p.store.StoreBatch(ctx, runID, s.Points[lo:hi])
		default:
			err = fmt.Errorf("unknown backend: %s", p.backend)
		}
		if err != nil {
			p.metrics.RecordError("route_series")
			return fmt.Errorf("route series: %w", err)
		}
		p.metrics.RecordPointsRouted(p.backend, hi-lo)
	}

	p.metrics.RecordLatency("route_series", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *SeriesProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
