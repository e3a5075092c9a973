package badge

import (
	"context"

	"github.com/treedoctor/treedoctor-api/internal/worker"
)

// EvaluationJob runs CheckAndAward for one student on the worker pool
type EvaluationJob struct {
	Service Service
	UserID  string
}

var _ worker.Job = (*EvaluationJob)(nil)

// Process implements worker.Job
func (j *EvaluationJob) Process(ctx context.Context) error {
	_, err := j.Service.CheckAndAward(ctx, j.UserID)
	return err
}

// SweepJob runs EvaluateAll. Scheduled periodically so that age badges are
// awarded without waiting for the student's next action.
type SweepJob struct {
	Service Service
}

var _ worker.Job = (*SweepJob)(nil)

// Process implements worker.Job
func (j *SweepJob) Process(ctx context.Context) error {
	_, err := j.Service.EvaluateAll(ctx)
	return err
}
