package usecase

import (
	"context"
	"fmt"

	"DormBack/internal/domain/models"
	"DormBack/pkg/logger"
	"DormBack/pkg/queue"
	"DormBack/pkg/util"
)

// RunMessageType is the queue message type for async generation runs.
const RunMessageType = "fixture.run"

// RunPayload is the queue payload enqueued for an async run. Start is a
// plain date so payloads survive JSON round-trips through Redis.
type RunPayload struct {
	RunID  string `json:"run_id"`
	Seed   int64  `json:"seed"`
	Length int    `json:"length"`
	Start  string `json:"start"`
}

// GenerateRunJob executes a queued fixture run: generate the series,
// route it to the configured backend, track state in the run store.
type GenerateRunJob struct {
	fixtures *FixtureService
	proc     *SeriesProcessor
	runs     *RunStore
	log      *logger.Logger
}

func NewGenerateRunJob(fixtures *FixtureService, proc *SeriesProcessor, runs *RunStore, log *logger.Logger) *GenerateRunJob {
	return &GenerateRunJob{fixtures: fixtures, proc: proc, runs: runs, log: log}
}

func (j *GenerateRunJob) Name() string { return "generate_run" }
func (j *GenerateRunJob) Type() string { return RunMessageType }

func (j *GenerateRunJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RunPayload](payload)
	if err != nil {
		return fmt.Errorf("parse run payload: %w", err)
	}

	if err := j.runs.SetState(ctx, p.RunID, models.RunRunning, ""); err != nil {
		j.log.Warn("run state update failed", logger.String("run_id", p.RunID), logger.Error(err))
	}

	if err := j.execute(ctx, p); err != nil {
		if stateErr := j.runs.SetState(ctx, p.RunID, models.RunFailed, err.Error()); stateErr != nil {
			j.log.Error("run state update failed", logger.String("run_id", p.RunID), logger.Error(stateErr))
		}
		// Returning the error would trigger queue retries; a failed
		// deterministic run will fail identically on every retry.
		j.log.Error("fixture run failed", logger.String("run_id", p.RunID), logger.Error(err))
		return nil
	}

	if err := j.runs.SetState(ctx, p.RunID, models.RunDone, ""); err != nil {
		j.log.Warn("run state update failed", logger.String("run_id", p.RunID), logger.Error(err))
	}
	j.log.Info("fixture run done",
		logger.String("run_id", p.RunID),
		logger.Int64("seed", p.Seed),
		logger.Int("length", p.Length))
	return nil
}

func (j *GenerateRunJob) execute(ctx context.Context, p *RunPayload) error {
	start, ok := util.ParseTime(p.Start)
	if !ok {
		return fmt.Errorf("bad start date %q", p.Start)
	}
	series, err := j.fixtures.GetSeries(ctx, "job", p.Seed, p.Length, start)
	if err != nil {
		return fmt.Errorf("generate series: %w", err)
	}
	if err := j.proc.ProcessSeries(ctx, p.RunID, series); err != nil {
		return fmt.Errorf("route series: %w", err)
	}
	return nil
}

var _ queue.Job = (*GenerateRunJob)(nil)
