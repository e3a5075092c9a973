package domain

import "time"

// CalendarEventType identifies what happened on a calendar day
type CalendarEventType string

const (
	CalendarEventPlant   CalendarEventType = "plant"
	CalendarEventWater   CalendarEventType = "water"
	CalendarEventMeasure CalendarEventType = "measure"
)

// CalendarEvent is a single tree activity placed on a calendar day
type CalendarEvent struct {
	Type         CalendarEventType `json:"type"`
	TreeID       string            `json:"tree_id"`
	TreeName     string            `json:"tree_name"`
	At           time.Time         `json:"at"`
	Height       *float64          `json:"height,omitempty"`
	Diameter     *float64          `json:"diameter,omitempty"`
	HealthStatus HealthStatus      `json:"health_status,omitempty"`
}

// CalendarMonth groups a month of events by local date key (YYYY-MM-DD)
type CalendarMonth struct {
	UserID string                     `json:"user_id"`
	Month  string                     `json:"month"`
	Days   map[string][]CalendarEvent `json:"days"`
}

// TreeOverview is the dashboard card for a single tree
type TreeOverview struct {
	TreeID         string      `json:"tree_id"`
	Name           string      `json:"name"`
	Species        string      `json:"species"`
	PlantedAt      time.Time   `json:"planted_at"`
	AgeDays        int         `json:"age_days"`
	Latest         Measurement `json:"latest"`
	TimesWatered   int         `json:"times_watered"`
	LastWatered    *time.Time  `json:"last_watered,omitempty"`
	LogCount       int         `json:"log_count"`
	LatestPhotoRef *string     `json:"latest_photo_ref,omitempty"`
}

// Dashboard aggregates a student's trees and badge progress
type Dashboard struct {
	UserID         string         `json:"user_id"`
	Trees          []TreeOverview `json:"trees"`
	TotalWaterings int            `json:"total_waterings"`
	TotalLogs      int            `json:"total_logs"`
	BadgesEarned   int            `json:"badges_earned"`
	BadgesTotal    int            `json:"badges_total"`
}
