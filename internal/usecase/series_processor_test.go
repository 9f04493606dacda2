package usecase

import (
	"context"
	"errors"
	"testing"

	"DormBack/internal/synthetic"
)

func TestProcessSeriesKafkaBatches(t *testing.T) {
	pub := &fakePublisher{}
	metrics := newFakeMetrics()
	proc := NewSeriesProcessor(pub, newFakeStorage(), metrics, "kafka", 4)

	s, err := synthetic.NewGenerator().Generate(42, 10, testStart())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := proc.ProcessSeries(context.Background(), "run-1", s); err != nil {
		t.Fatalf("ProcessSeries: %v", err)
	}

	if len(pub.points) != 10 {
		t.Fatalf("published %d points, want 10", len(pub.points))
	}
	// 10 points with batch size 4 is 3 batches.
	if len(pub.runIDs) != 3 {
		t.Fatalf("published %d batches, want 3", len(pub.runIDs))
	}
	if metrics.routed["kafka"] != 10 {
		t.Fatalf("routed metric = %d, want 10", metrics.routed["kafka"])
	}
}

func TestProcessSeriesClickhouse(t *testing.T) {
	store := newFakeStorage()
	proc := NewSeriesProcessor(&fakePublisher{}, store, newFakeMetrics(), "clickhouse", 0)

	s, err := synthetic.NewGenerator().Generate(1, 7, testStart())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := proc.ProcessSeries(context.Background(), "run-ch", s); err != nil {
		t.Fatalf("ProcessSeries: %v", err)
	}
	if got := len(store.byRun["run-ch"]); got != 7 {
		t.Fatalf("stored %d points, want 7", got)
	}
}

func TestProcessSeriesNoneIsNoop(t *testing.T) {
	pub := &fakePublisher{}
	store := newFakeStorage()
	proc := NewSeriesProcessor(pub, store, newFakeMetrics(), "none", 0)

	s, err := synthetic.NewGenerator().Generate(42, 3, testStart())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := proc.ProcessSeries(context.Background(), "run-n", s); err != nil {
		t.Fatalf("ProcessSeries: %v", err)
	}
	if len(pub.points) != 0 || len(store.byRun) != 0 {
		t.Fatal("backend none must not route points")
	}
}

func TestProcessSeriesPublisherError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	metrics := newFakeMetrics()
	proc := NewSeriesProcessor(pub, newFakeStorage(), metrics, "kafka", 0)

	s, err := synthetic.NewGenerator().Generate(42, 3, testStart())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := proc.ProcessSeries(context.Background(), "run-e", s); err == nil {
		t.Fatal("expected publish error")
	}
	if metrics.errors["route_series"] != 1 {
		t.Fatalf("error metric = %d, want 1", metrics.errors["route_series"])
	}
}
