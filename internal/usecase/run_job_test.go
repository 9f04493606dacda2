package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"DormBack/internal/domain/models"
	"DormBack/internal/synthetic"
	"DormBack/pkg/cache"
)

func newTestRunStore(t *testing.T) *RunStore {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })
	return NewRunStore(mem)
}

func queuedRun(t *testing.T, runs *RunStore, id string) {
	t.Helper()
	err := runs.Save(context.Background(), &models.FixtureRun{
		ID:        id,
		Seed:      42,
		Length:    6,
		Start:     testStart(),
		Backend:   "clickhouse",
		State:     models.RunQueued,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestRunStoreLifecycle(t *testing.T) {
	runs := newTestRunStore(t)
	queuedRun(t, runs, "run-1")

	got, err := runs.Get(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != models.RunQueued || got.Seed != 42 {
		t.Fatalf("unexpected run: %+v", got)
	}

	if err := runs.SetState(context.Background(), "run-1", models.RunFailed, "boom"); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	got, err = runs.Get(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != models.RunFailed || got.Error != "boom" {
		t.Fatalf("unexpected run after fail: %+v", got)
	}

	if _, err := runs.Get(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestGenerateRunJobSuccess(t *testing.T) {
	runs := newTestRunStore(t)
	queuedRun(t, runs, "run-ok")

	store := newFakeStorage()
	fixtures := NewFixtureService(synthetic.NewGenerator(), nil, newFakeMetrics(), newTestLogger(t), 0)
	proc := NewSeriesProcessor(&fakePublisher{}, store, newFakeMetrics(), "clickhouse", 0)
	job := NewGenerateRunJob(fixtures, proc, runs, newTestLogger(t))

	payload := map[string]interface{}{
		"run_id": "run-ok",
		"seed":   float64(42),
		"length": float64(6),
		"start":  "2023-01-01",
	}
	if err := job.Handle(context.Background(), payload); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if got := len(store.byRun["run-ok"]); got != 6 {
		t.Fatalf("stored %d points, want 6", got)
	}
	run, err := runs.Get(context.Background(), "run-ok")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run.State != models.RunDone {
		t.Fatalf("state = %q, want done", run.State)
	}
}

func TestGenerateRunJobBadParamsMarksFailed(t *testing.T) {
	runs := newTestRunStore(t)
	queuedRun(t, runs, "run-bad")

	fixtures := NewFixtureService(synthetic.NewGenerator(), nil, newFakeMetrics(), newTestLogger(t), 0)
	proc := NewSeriesProcessor(&fakePublisher{}, newFakeStorage(), newFakeMetrics(), "none", 0)
	job := NewGenerateRunJob(fixtures, proc, runs, newTestLogger(t))

	err := job.Handle(context.Background(), &RunPayload{
		RunID:  "run-bad",
		Seed:   -5,
		Length: 6,
		Start:  "2023-01-01",
	})
	// Invalid parameters are terminal, the job must not ask for a retry.
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	run, getErr := runs.Get(context.Background(), "run-bad")
	if getErr != nil {
		t.Fatalf("Get: %v", getErr)
	}
	if run.State != models.RunFailed || run.Error == "" {
		t.Fatalf("unexpected run: %+v", run)
	}
}
