package domain

import (
	"time"
)

// HealthStatus describes the condition recorded with a measurement
type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthDamaged HealthStatus = "damaged"
	HealthWizened HealthStatus = "wizened"
	HealthDead    HealthStatus = "dead"
)

// ValidHealthStatuses lists the statuses accepted by the measurement log
var ValidHealthStatuses = map[HealthStatus]bool{
	HealthHealthy: true,
	HealthDamaged: true,
	HealthWizened: true,
	HealthDead:    true,
}

// Measurement is a single entry of a tree's append-only measurement log
type Measurement struct {
	Timestamp    time.Time    `json:"timestamp"`
	Height       float64      `json:"height"`
	Diameter     float64      `json:"diameter"`
	HealthStatus HealthStatus `json:"health_status"`
	Note         string       `json:"note,omitempty"`
	PhotoRef     *string      `json:"photo_ref,omitempty"`
}

// Tree represents one planted tree owned by a student.
// Waterings and MeasurementLog are append-only and never reordered.
type Tree struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Name            string        `json:"name"`
	Species         string        `json:"species"`
	Capsule         string        `json:"capsule,omitempty"`
	PhotoRefs       []string      `json:"photo_refs,omitempty"`
	PlantedAt       time.Time     `json:"planted_at"`
	InitialHeight   float64       `json:"initial_height"`
	InitialDiameter float64       `json:"initial_diameter"`
	Waterings       []time.Time   `json:"waterings"`
	MeasurementLog  []Measurement `json:"measurement_log"`
}

// LatestMeasurement returns the log entry with the greatest timestamp.
// On equal timestamps the entry appended last wins.
// Trees without a log fall back to the initial values taken at planting.
func (t Tree) LatestMeasurement() Measurement {
	if len(t.MeasurementLog) == 0 {
		return Measurement{
			Timestamp:    t.PlantedAt,
			Height:       t.InitialHeight,
			Diameter:     t.InitialDiameter,
			HealthStatus: HealthHealthy,
		}
	}
	latest := t.MeasurementLog[0]
	for _, m := range t.MeasurementLog[1:] {
		if !m.Timestamp.Before(latest.Timestamp) {
			latest = m
		}
	}
	return latest
}

// LastWatered returns the most recent watering, or nil if the tree was never watered
func (t Tree) LastWatered() *time.Time {
	if len(t.Waterings) == 0 {
		return nil
	}
	last := t.Waterings[0]
	for _, w := range t.Waterings[1:] {
		if !w.Before(last) {
			last = w
		}
	}
	return &last
}

// HeightSamples returns every recorded height for the tree.
// The initial height is used only when the log is empty.
func (t Tree) HeightSamples() []float64 {
	if len(t.MeasurementLog) == 0 {
		return []float64{t.InitialHeight}
	}
	samples := make([]float64, len(t.MeasurementLog))
	for i, m := range t.MeasurementLog {
		samples[i] = m.Height
	}
	return samples
}

// PlantTreeInput carries the data collected when a student plants a tree
type PlantTreeInput struct {
	Name      string
	Species   string
	Height    float64
	Diameter  float64
	Capsule   string
	PhotoRefs []string
}

// MeasurementInput carries the data for a new measurement log entry
type MeasurementInput struct {
	Height       float64
	Diameter     float64
	HealthStatus HealthStatus
	Note         string
	PhotoRef     *string
}
