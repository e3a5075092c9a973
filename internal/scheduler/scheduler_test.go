package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/treedoctor/treedoctor-api/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	// Create worker pool
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	// Create scheduler
	sched := New(pool)
	defer sched.Stop()

	// Create mock job
	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	// Schedule job every 10ms
	sched.Schedule("mock", 10*time.Millisecond, job)

	// Wait for at least 2 runs
	timeout := time.After(100 * time.Millisecond)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

type fullPool struct{ attempts int32 }

func (p *fullPool) TryEnqueue(job worker.Job) bool {
	atomic.AddInt32(&p.attempts, 1)
	return false
}

func TestScheduler_SkipsTickWhenPoolFull(t *testing.T) {
	pool := &fullPool{}
	sched := New(pool)

	sched.ScheduleImmediate("sweep", 5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	// The scheduler keeps ticking instead of blocking on the full pool
	assert.GreaterOrEqual(t, atomic.LoadInt32(&pool.attempts), int32(2))
}

func TestScheduler_NonPositiveIntervalIgnored(t *testing.T) {
	pool := &fullPool{}
	sched := New(pool)

	sched.ScheduleImmediate("disabled", 0, &MockJob{})
	sched.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&pool.attempts))
}
