package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DormBack/internal/domain/models"
	"DormBack/pkg/cache"
)

// ErrRunNotFound is returned when a run id is unknown or expired.
var ErrRunNotFound = errors.New("run not found")

const runTTL = 24 * time.Hour

// RunStore keeps async run state in the cache layer. Runs are
// short-lived bookkeeping, not durable records, so cache expiry is the
// retention policy.
type RunStore struct {
	cache cache.Service
}

func NewRunStore(c cache.Service) *RunStore {
	return &RunStore{cache: c}
}

func runKey(id string) string {
	return cache.GenerateKey("run", id)
}

func (s *RunStore) Save(ctx context.Context, run *models.FixtureRun) error {
	run.UpdatedAt = time.Now().UTC()
	if err := s.cache.Set(ctx, runKey(run.ID), run, runTTL); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, id string) (*models.FixtureRun, error) {
	var run models.FixtureRun
	err := s.cache.Get(ctx, runKey(id), &run)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

// SetState transitions a run and persists it. errMsg is recorded only
// for failed state.
func (s *RunStore) SetState(ctx context.Context, id, state, errMsg string) error {
	run, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	run.State = state
	run.Error = ""
	if state == models.RunFailed {
		run.Error = errMsg
	}
	return s.Save(ctx, run)
}
