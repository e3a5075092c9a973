package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata, or nil.
func (e Event) GetMetadataValue(key string) interface{} {
	m, ok := e.Metadata.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

const (
	StudentRegistered Type = domain.EventTypeStudentRegistered
	TreePlanted       Type = domain.EventTypeTreePlanted
	TreeWatered       Type = domain.EventTypeTreeWatered
	TreeMeasured      Type = domain.EventTypeTreeMeasured
	BadgeAwarded      Type = domain.EventTypeBadgeAwarded
)

// TreeActionTypes are the events that may move a student across a badge threshold
var TreeActionTypes = []Type{TreePlanted, TreeWatered, TreeMeasured}

// Typed event payloads

// StudentRegisteredPayloadV1 is the payload for student.registered
type StudentRegisteredPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// TreeActionPayloadV1 is shared by tree.planted, tree.watered and tree.measured
type TreeActionPayloadV1 struct {
	UserID       string  `json:"user_id"`
	TreeID       string  `json:"tree_id"`
	TreeName     string  `json:"tree_name,omitempty"`
	Height       float64 `json:"height,omitempty"`
	HealthStatus string  `json:"health_status,omitempty"`
	Timestamp    int64   `json:"timestamp"`
}

// BadgeAwardedPayloadV1 is published once per newly inserted ledger record
type BadgeAwardedPayloadV1 struct {
	UserID         string `json:"user_id"`
	BadgeID        string `json:"badge_id"`
	BadgeName      string `json:"badge_name"`
	Category       string `json:"category"`
	CatalogVersion string `json:"catalog_version"`
	EarnedAt       int64  `json:"earned_at"`
}

// NewStudentRegisteredEvent creates a student.registered event
func NewStudentRegisteredEvent(student domain.Student) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StudentRegistered,
		Payload: StudentRegisteredPayloadV1{
			UserID:    student.ID,
			Username:  student.Username,
			Timestamp: student.CreatedAt.Unix(),
		},
	}
}

// NewTreePlantedEvent creates a tree.planted event
func NewTreePlantedEvent(tree domain.Tree) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TreePlanted,
		Payload: TreeActionPayloadV1{
			UserID:    tree.UserID,
			TreeID:    tree.ID,
			TreeName:  tree.Name,
			Height:    tree.InitialHeight,
			Timestamp: tree.PlantedAt.Unix(),
		},
	}
}

// NewTreeWateredEvent creates a tree.watered event
func NewTreeWateredEvent(userID, treeID string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TreeWatered,
		Payload: TreeActionPayloadV1{
			UserID:    userID,
			TreeID:    treeID,
			Timestamp: at.Unix(),
		},
	}
}

// NewTreeMeasuredEvent creates a tree.measured event
func NewTreeMeasuredEvent(userID, treeID string, m domain.Measurement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TreeMeasured,
		Payload: TreeActionPayloadV1{
			UserID:       userID,
			TreeID:       treeID,
			Height:       m.Height,
			HealthStatus: string(m.HealthStatus),
			Timestamp:    m.Timestamp.Unix(),
		},
	}
}

// NewBadgeAwardedEvent creates a badge.awarded event
func NewBadgeAwardedEvent(earned domain.EarnedBadge, def domain.BadgeDefinition, catalogVersion string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BadgeAwarded,
		Payload: BadgeAwardedPayloadV1{
			UserID:         earned.UserID,
			BadgeID:        earned.BadgeID,
			BadgeName:      def.Name,
			Category:       string(earned.Category),
			CatalogVersion: catalogVersion,
			EarnedAt:       earned.EarnedAt.Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publish half of Bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscribed handler synchronously and joins their errors.
// Handlers that need to do slow work hand it to the worker pool.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
