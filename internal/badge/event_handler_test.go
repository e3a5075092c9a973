package badge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/worker"
)

type capturePool struct {
	jobs []worker.Job
	full bool
}

func (p *capturePool) TryEnqueue(job worker.Job) bool {
	if p.full {
		return false
	}
	p.jobs = append(p.jobs, job)
	return true
}

func TestEventHandler_QueuesEvaluationPerTreeAction(t *testing.T) {
	trees, ledger := newFakeTrees(), newFakeLedger()
	trees.set(student, treeWith("a", daysAgo(1), []time.Time{at(14, 12), at(15, 12)}))
	svc := newTestService(trees, ledger, nil)
	pool := &capturePool{}
	bus := event.NewMemoryBus()
	NewEventHandler(svc, pool).Register(bus)

	tree := treeWith("a", daysAgo(1), nil)
	require.NoError(t, bus.Publish(context.Background(), event.NewTreePlantedEvent(tree)))
	require.NoError(t, bus.Publish(context.Background(), event.NewTreeWateredEvent(student, "a", testNow)))
	require.NoError(t, bus.Publish(context.Background(), event.NewTreeMeasuredEvent(student, "a", domain.Measurement{Height: 10})))
	require.NoError(t, bus.Publish(context.Background(), event.Event{Type: event.StudentRegistered}))

	require.Len(t, pool.jobs, 3)
	assert.Equal(t, 0, ledger.awardCalls, "nothing evaluated synchronously")

	job := pool.jobs[0].(*EvaluationJob)
	assert.Equal(t, student, job.UserID)
	require.NoError(t, job.Process(context.Background()))
	assert.Contains(t, ledger.ids(student), "first_sip")
}

func TestEventHandler_FullQueueIsNotAnError(t *testing.T) {
	handler := NewEventHandler(newTestService(newFakeTrees(), newFakeLedger(), nil), &capturePool{full: true})

	err := handler.HandleTreeAction(context.Background(), event.NewTreeWateredEvent(student, "a", testNow))

	assert.NoError(t, err)
}

func TestEventHandler_BadPayload(t *testing.T) {
	handler := NewEventHandler(newTestService(newFakeTrees(), newFakeLedger(), nil), &capturePool{})

	err := handler.HandleTreeAction(context.Background(), event.Event{Type: event.TreeWatered, Payload: "nonsense"})
	assert.Error(t, err)

	err = handler.HandleTreeAction(context.Background(), event.Event{Type: event.TreeWatered, Payload: event.TreeActionPayloadV1{TreeID: "a"}})
	assert.ErrorContains(t, err, "no user_id")
}

func TestSweepJob(t *testing.T) {
	trees, ledger := newFakeTrees(), newFakeLedger()
	trees.set("s1", treeWith("a", daysAgo(8), nil))
	svc := newTestService(trees, ledger, nil)
	svc.students = &fakeStudents{byID: map[string]domain.Student{"s1": {ID: "s1"}}}

	require.NoError(t, (&SweepJob{Service: svc}).Process(context.Background()))
	assert.Contains(t, ledger.ids("s1"), "first_week")
}

func TestSweepJob_WithoutStudentStore(t *testing.T) {
	svc := newTestService(newFakeTrees(), newFakeLedger(), nil)
	svc.students = nil

	err := (&SweepJob{Service: svc}).Process(context.Background())
	assert.ErrorIs(t, err, ErrNoStudentStore)
}
