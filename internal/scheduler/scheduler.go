package scheduler

import (
	"sync"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/worker"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler enqueues jobs on the worker pool at fixed intervals
type Scheduler struct {
	workerPool Enqueuer
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. A tick is skipped,
// not queued up, when the pool is saturated.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.schedule(name, interval, job, false)
}

// ScheduleImmediate is Schedule plus one run right away
func (s *Scheduler) ScheduleImmediate(name string, interval time.Duration, job worker.Job) {
	s.schedule(name, interval, job, true)
}

func (s *Scheduler) schedule(name string, interval time.Duration, job worker.Job, immediate bool) {
	if interval <= 0 {
		logger.Warn(LogMsgScheduleDisabled, "job", name)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate {
			s.enqueue(name, job)
		}

		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()

	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval.String())
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.workerPool.TryEnqueue(job) {
		logger.Warn(LogMsgTickSkipped, "job", name)
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
