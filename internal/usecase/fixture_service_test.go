package usecase

import (
	"context"
	"testing"
	"time"

	"DormBack/internal/synthetic"
	"DormBack/pkg/cache"
)

func testStart() time.Time {
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestGetSeriesDeterministic(t *testing.T) {
	svc := NewFixtureService(synthetic.NewGenerator(), nil, newFakeMetrics(), newTestLogger(t), 0)

	a, err := svc.GetSeries(context.Background(), "api", 42, 10, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	b, err := svc.GetSeries(context.Background(), "api", 42, 10, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if len(a.Points) != 10 || len(b.Points) != 10 {
		t.Fatalf("expected 10 points, got %d and %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs without cache: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestGetSeriesCacheHit(t *testing.T) {
	metrics := newFakeMetrics()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := NewFixtureService(synthetic.NewGenerator(), mem, metrics, newTestLogger(t), time.Minute)

	first, err := svc.GetSeries(context.Background(), "api", 7, 5, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	second, err := svc.GetSeries(context.Background(), "api", 7, 5, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if metrics.generated != 1 {
		t.Fatalf("expected 1 generation, got %d", metrics.generated)
	}
	for i := range first.Points {
		if !first.Points[i].Date.Equal(second.Points[i].Date) ||
			first.Points[i].Price != second.Points[i].Price {
			t.Fatalf("cached point %d differs", i)
		}
	}
}

func TestGetSeriesDistinctParamsDistinctEntries(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := NewFixtureService(synthetic.NewGenerator(), mem, newFakeMetrics(), newTestLogger(t), time.Minute)

	a, err := svc.GetSeries(context.Background(), "api", 1, 5, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	b, err := svc.GetSeries(context.Background(), "api", 2, 5, testStart())
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if a.Points[0].Price == b.Points[0].Price {
		t.Fatal("different seeds produced identical first price")
	}
}

func TestGetSeriesInvalidArguments(t *testing.T) {
	svc := NewFixtureService(synthetic.NewGenerator(), nil, newFakeMetrics(), newTestLogger(t), 0)

	if _, err := svc.GetSeries(context.Background(), "api", -1, 5, testStart()); err == nil {
		t.Fatal("expected error for negative seed")
	}
	if _, err := svc.GetSeries(context.Background(), "api", 42, 0, testStart()); err == nil {
		t.Fatal("expected error for zero length")
	}
}
