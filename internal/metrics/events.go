package metrics

import (
	"context"

	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.StudentRegistered,
		event.TreePlanted,
		event.TreeWatered,
		event.TreeMeasured,
		event.BadgeAwarded,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.TreePlanted:
		TreesPlanted.Inc()

	case event.TreeWatered:
		TreesWatered.Inc()

	case event.TreeMeasured:
		payload, err := event.DecodePayload[event.TreeActionPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		MeasurementsLogged.WithLabelValues(payload.HealthStatus).Inc()

	case event.BadgeAwarded:
		payload, err := event.DecodePayload[event.BadgeAwardedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		BadgesAwarded.WithLabelValues(payload.BadgeID, payload.Category).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
