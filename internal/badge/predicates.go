package badge

import (
	"sort"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// SecretPredicates returns the registry of built-in secret badge predicates
func SecretPredicates() map[string]Predicate {
	return map[string]Predicate{
		BadgeEarlyBird:     earlyBird,
		BadgeTreeWhisperer: treeWhisperer,
		BadgeGreenGuardian: greenGuardian,
		BadgeGrowthSpurt:   growthSpurt,
	}
}

func earlyBird(m domain.BadgeMetrics, _ []domain.Tree) bool {
	return m.HasEarlyMorningWatering
}

// treeWhisperer: log entries on TreeWhispererStreakDays consecutive local days, any tree
func treeWhisperer(m domain.BadgeMetrics, trees []domain.Tree) bool {
	days := make(map[time.Time]bool)
	for _, tree := range trees {
		for _, entry := range tree.MeasurementLog {
			days[localDay(entry.Timestamp, m.Location)] = true
		}
	}
	if len(days) < TreeWhispererStreakDays {
		return false
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	streak := 1
	for i := 1; i < len(sorted); i++ {
		// AddDate keeps DST transitions from breaking the streak
		if sorted[i-1].AddDate(0, 0, 1).Equal(sorted[i]) {
			streak++
			if streak >= TreeWhispererStreakDays {
				return true
			}
		} else {
			streak = 1
		}
	}
	return false
}

// greenGuardian: at least two trees and one local day on which every tree was watered
func greenGuardian(m domain.BadgeMetrics, trees []domain.Tree) bool {
	if len(trees) < GreenGuardianMinTrees {
		return false
	}

	var common map[time.Time]bool
	for _, tree := range trees {
		days := make(map[time.Time]bool, len(tree.Waterings))
		for _, w := range tree.Waterings {
			d := localDay(w, m.Location)
			if common == nil || common[d] {
				days[d] = true
			}
		}
		if len(days) == 0 {
			return false
		}
		common = days
	}
	return len(common) > 0
}

// growthSpurt: within one tree, two log entries at most a week apart with a gain over 10cm
func growthSpurt(_ domain.BadgeMetrics, trees []domain.Tree) bool {
	for _, tree := range trees {
		log := make([]domain.Measurement, len(tree.MeasurementLog))
		copy(log, tree.MeasurementLog)
		sort.SliceStable(log, func(i, j int) bool { return log[i].Timestamp.Before(log[j].Timestamp) })

		for i := range log {
			for j := i + 1; j < len(log); j++ {
				if log[j].Timestamp.Sub(log[i].Timestamp) > GrowthSpurtWindow {
					break
				}
				if log[j].Height-log[i].Height > GrowthSpurtMinGainCM {
					return true
				}
			}
		}
	}
	return false
}
