package domain

import "time"

// BadgeCategory groups badges by the metric they are measured against
type BadgeCategory string

const (
	BadgeCategoryWatering BadgeCategory = "watering"
	BadgeCategoryHeight   BadgeCategory = "height"
	BadgeCategoryAge      BadgeCategory = "age"
	BadgeCategorySecret   BadgeCategory = "secret"
)

// BadgeCategories lists the categories in display order
var BadgeCategories = []BadgeCategory{
	BadgeCategoryWatering,
	BadgeCategoryHeight,
	BadgeCategoryAge,
	BadgeCategorySecret,
}

// BadgeDefinition is an immutable catalog entry.
// Threshold is zero for secret badges, which are decided by a predicate instead.
type BadgeDefinition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Category    BadgeCategory `json:"category"`
	Threshold   float64       `json:"threshold,omitempty"`
	IsSecret    bool          `json:"is_secret"`
}

// CategoryInfo describes a badge category for display
type CategoryInfo struct {
	Category    BadgeCategory `json:"category"`
	Title       string        `json:"title"`
	Icon        string        `json:"icon"`
	Measurement string        `json:"measurement"`
}

// EarnedBadge is a ledger entry, created once per user per badge id
type EarnedBadge struct {
	UserID   string        `json:"user_id"`
	BadgeID  string        `json:"badge_id"`
	Category BadgeCategory `json:"category"`
	EarnedAt time.Time     `json:"earned_at"`
}

// BadgeMetrics are the summary values the evaluator compares against thresholds
type BadgeMetrics struct {
	TreeCount               int            `json:"tree_count"`
	HasTrees                bool           `json:"has_trees"`
	TotalWaterings          int            `json:"total_waterings"`
	MaxHeight               float64        `json:"max_height"`
	OldestTreeAgeDays       int            `json:"oldest_tree_age_days"`
	HasEarlyMorningWatering bool           `json:"has_early_morning_watering"`
	Now                     time.Time      `json:"now"`
	Location                *time.Location `json:"-"`
}

// BadgeFailure records a badge that qualified but could not be persisted
type BadgeFailure struct {
	BadgeID string `json:"badge_id"`
	Error   string `json:"error"`
}

// EvaluationResult summarises one evaluation run for a user
type EvaluationResult struct {
	UserID         string         `json:"user_id"`
	CatalogVersion string         `json:"catalog_version"`
	Metrics        BadgeMetrics   `json:"metrics"`
	Awarded        []EarnedBadge  `json:"awarded"`
	Failed         []BadgeFailure `json:"failed,omitempty"`
	AlreadyEarned  int            `json:"already_earned"`
}

// BadgeStatus is one catalog entry as presented to a specific user.
// Unearned secret badges show their name but hide the description.
type BadgeStatus struct {
	BadgeDefinition
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
	Progress float64    `json:"progress"`
}

// CategorySummary holds earned vs total counts for a category
type CategorySummary struct {
	CategoryInfo
	Earned int           `json:"earned"`
	Total  int           `json:"total"`
	Badges []BadgeStatus `json:"badges"`
}

// BadgeSummary is the per-user badge overview
type BadgeSummary struct {
	UserID         string            `json:"user_id"`
	CatalogVersion string            `json:"catalog_version"`
	Earned         int               `json:"earned"`
	Total          int               `json:"total"`
	Categories     []CategorySummary `json:"categories"`
}
