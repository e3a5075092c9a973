package badge

import (
	"fmt"
	"strings"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// WateringCountMode controls how the planting watering is discounted
type WateringCountMode string

const (
	// WateringModeLegacy subtracts one per tree unconditionally, so a tree
	// with no waterings contributes -1. This matches the historical counts
	// students already hold badges for.
	WateringModeLegacy WateringCountMode = "legacy"
	// WateringModeClamped subtracts one per tree but never below zero
	WateringModeClamped WateringCountMode = "clamped"
	// WateringModeRaw counts every watering
	WateringModeRaw WateringCountMode = "raw"
)

// ParseWateringCountMode accepts legacy, clamped or raw (case-insensitive)
func ParseWateringCountMode(s string) (WateringCountMode, error) {
	switch mode := WateringCountMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case WateringModeLegacy, WateringModeClamped, WateringModeRaw:
		return mode, nil
	case "":
		return WateringModeLegacy, nil
	default:
		return "", fmt.Errorf("%w: unknown watering count mode %q", domain.ErrInvalidInput, s)
	}
}

func (m WateringCountMode) count(waterings int) int {
	switch m {
	case WateringModeRaw:
		return waterings
	case WateringModeClamped:
		if waterings == 0 {
			return 0
		}
		return waterings - 1
	default:
		return waterings - 1
	}
}

// Aggregate reduces a student's trees to the metrics the evaluator needs.
// It is pure: the same trees, now and location always give the same result.
func Aggregate(trees []domain.Tree, now time.Time, loc *time.Location, mode WateringCountMode) domain.BadgeMetrics {
	if loc == nil {
		loc = time.UTC
	}

	m := domain.BadgeMetrics{
		TreeCount: len(trees),
		HasTrees:  len(trees) > 0,
		Now:       now,
		Location:  loc,
	}
	if !m.HasTrees {
		return m
	}

	oldest := trees[0].PlantedAt
	first := true
	for _, tree := range trees {
		m.TotalWaterings += mode.count(len(tree.Waterings))

		for _, h := range tree.HeightSamples() {
			if first || h > m.MaxHeight {
				m.MaxHeight = h
				first = false
			}
		}

		if tree.PlantedAt.Before(oldest) {
			oldest = tree.PlantedAt
		}

		if !m.HasEarlyMorningWatering {
			for _, w := range tree.Waterings {
				if isEarlyMorning(w, loc) {
					m.HasEarlyMorningWatering = true
					break
				}
			}
		}
	}

	if age := now.Sub(oldest); age > 0 {
		m.OldestTreeAgeDays = int(age / (24 * time.Hour))
	}

	return m
}

func isEarlyMorning(t time.Time, loc *time.Location) bool {
	hour := t.In(loc).Hour()
	return hour >= EarlyBirdStartHour && hour < EarlyBirdEndHour
}

// localDay truncates t to its calendar date in loc
func localDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, mo, d := t.In(loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}
