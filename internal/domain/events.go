package domain

// Event type constants used for event bus subscriptions and metrics.
//
// Event types follow the pattern: <entity>.<action> (e.g., "tree.watered")
const (
	// EventTypeStudentRegistered is published after a student record is created
	EventTypeStudentRegistered = "student.registered"

	// EventTypeTreePlanted is published when a student plants a new tree
	EventTypeTreePlanted = "tree.planted"

	// EventTypeTreeWatered is published when a watering is appended to a tree
	EventTypeTreeWatered = "tree.watered"

	// EventTypeTreeMeasured is published when a measurement log entry is appended
	EventTypeTreeMeasured = "tree.measured"

	// EventTypeBadgeAwarded is published once per newly inserted ledger entry
	EventTypeBadgeAwarded = "badge.awarded"
)
