package usecase

import (
	"context"

	"DormBack/pkg/logger"
	"DormBack/pkg/queue"
)

// InlineQueue runs jobs in-process when no Redis broker is configured.
// Mock mode uses it so the harness stays dependency-free; the interface
// matches the Redis queue so callers never know the difference.
type InlineQueue struct {
	jobs map[string]queue.Job
	log  *logger.Logger
}

func NewInlineQueue(log *logger.Logger, jobs ...queue.Job) *InlineQueue {
	m := make(map[string]queue.Job, len(jobs))
	for _, j := range jobs {
		m[j.Type()] = j
	}
	return &InlineQueue{jobs: m, log: log}
}

func (q *InlineQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	job, ok := q.jobs[msgType]
	if !ok {
		q.log.Warn("no job for message type", logger.String("type", msgType))
		return nil
	}
	// Detached from the request context so the handler can return
	// immediately, matching the async broker behavior.
	go func() {
		if err := job.Handle(context.Background(), payload); err != nil {
			q.log.Error("inline job failed",
				logger.String("job", job.Name()),
				logger.Error(err))
		}
	}()
	return nil
}

var _ queue.QueueService = (*InlineQueue)(nil)
