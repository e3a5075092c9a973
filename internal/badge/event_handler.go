package badge

import (
	"context"
	"fmt"

	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/worker"
)

// Enqueuer is the part of worker.Pool the handler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// EventHandler triggers an evaluation after each tree action.
// Evaluations run on the worker pool so the tree action's own result never
// depends on badge bookkeeping.
type EventHandler struct {
	service Service
	pool    Enqueuer
}

// NewEventHandler creates a new badge event handler
func NewEventHandler(service Service, pool Enqueuer) *EventHandler {
	return &EventHandler{
		service: service,
		pool:    pool,
	}
}

// Register subscribes the handler to tree action events
func (h *EventHandler) Register(bus event.Bus) {
	for _, t := range event.TreeActionTypes {
		bus.Subscribe(t, h.HandleTreeAction)
	}
}

// HandleTreeAction queues an evaluation for the student who acted.
// A full queue is logged and swallowed; the periodic sweep catches up.
func (h *EventHandler) HandleTreeAction(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.TreeActionPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
	}
	if payload.UserID == "" {
		return fmt.Errorf("%s payload has no user_id", evt.Type)
	}

	if !h.pool.TryEnqueue(&EvaluationJob{Service: h.service, UserID: payload.UserID}) {
		log.Warn(LogMsgEvaluationQueueFull, "user_id", payload.UserID, "event_type", evt.Type)
		return nil
	}

	log.Debug(LogMsgEvaluationQueued, "user_id", payload.UserID, "event_type", evt.Type)
	return nil
}
