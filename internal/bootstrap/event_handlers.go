package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus     event.Bus
	BadgeService badge.Service
	WorkerPool   badge.Enqueuer
}

// RegisterEventHandlers sets up all event subscribers:
// the badge handler that queues an evaluation after each tree action, and the
// metrics collector that counts every event type.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	badgeHandler := badge.NewEventHandler(deps.BadgeService, deps.WorkerPool)
	badgeHandler.Register(deps.EventBus)
	slog.Info(LogMsgBadgeHandlerRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
