package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"DormBack/internal/domain/models"
	"DormBack/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// fakeMetrics counts recorder calls.
type fakeMetrics struct {
	mu        sync.Mutex
	generated int
	routed    map[string]int
	errors    map[string]int
	checks    map[string]string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		routed: make(map[string]int),
		errors: make(map[string]int),
		checks: make(map[string]string),
	}
}

func (f *fakeMetrics) RecordSeriesGenerated(string, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated++
}

func (f *fakeMetrics) RecordPointsRouted(backend string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routed[backend] += n
}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[kind]++
}

func (f *fakeMetrics) RecordCheck(check, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks[check] = result
}

func (f *fakeMetrics) RecordLatency(string, float64) {}

// fakePublisher records published points.
type fakePublisher struct {
	points []models.MarketPoint
	runIDs []string
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, runID string, p *models.MarketPoint) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, *p)
	f.runIDs = append(f.runIDs, runID)
	return nil
}

func (f *fakePublisher) PublishBatch(_ context.Context, runID string, points []models.MarketPoint) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, points...)
	f.runIDs = append(f.runIDs, runID)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeStorage records stored points keyed by run id.
type fakeStorage struct {
	byRun map[string][]models.MarketPoint
	err   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{byRun: make(map[string][]models.MarketPoint)}
}

func (f *fakeStorage) Init(context.Context) error { return nil }

func (f *fakeStorage) Store(_ context.Context, runID string, p *models.MarketPoint) error {
	if f.err != nil {
		return f.err
	}
	f.byRun[runID] = append(f.byRun[runID], *p)
	return nil
}

func (f *fakeStorage) StoreBatch(_ context.Context, runID string, points []models.MarketPoint) error {
	if f.err != nil {
		return f.err
	}
	f.byRun[runID] = append(f.byRun[runID], points...)
	return nil
}

func (f *fakeStorage) Query(_ context.Context, runID string, _, _ time.Time, _ int) ([]models.MarketPoint, error) {
	return f.byRun[runID], nil
}

func (f *fakeStorage) Health(context.Context) error { return nil }
func (f *fakeStorage) Close() error                 { return nil }
