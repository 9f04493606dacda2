package repository

import (
	"context"
	"time"

	"DormBack/internal/domain/models"
)

// Storage persists fixture points so integration pipelines can query them.
type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, runID string, p *models.MarketPoint) error
	StoreBatch(ctx context.Context, runID string, points []models.MarketPoint) error
	Query(ctx context.Context, runID string, from, to time.Time, limit int) ([]models.MarketPoint, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Publisher fans fixture points out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, runID string, p *models.MarketPoint) error
	PublishBatch(ctx context.Context, runID string, points []models.MarketPoint) error
	Close() error
}

type Metrics interface {
	RecordSeriesGenerated(source string, seed int64)
	RecordPointsRouted(backend string, n int)
	RecordError(kind string)
	RecordCheck(check, result string)
	RecordLatency(op string, seconds float64)
}
