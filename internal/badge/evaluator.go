package badge

import (
	"fmt"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// Evaluate returns the catalog entries that are not yet earned and whose
// criterion the metrics satisfy. Order follows the catalog but callers must
// not rely on it.
func Evaluate(metrics domain.BadgeMetrics, trees []domain.Tree, catalog *Catalog, earned map[string]domain.EarnedBadge) []domain.BadgeDefinition {
	var qualified []domain.BadgeDefinition
	for _, def := range catalog.definitions {
		if _, ok := earned[def.ID]; ok {
			continue
		}
		if qualifies(def, metrics, trees, catalog) {
			qualified = append(qualified, def)
		}
	}
	return qualified
}

func qualifies(def domain.BadgeDefinition, m domain.BadgeMetrics, trees []domain.Tree, catalog *Catalog) bool {
	switch def.Category {
	case domain.BadgeCategoryWatering:
		return float64(m.TotalWaterings) >= def.Threshold
	case domain.BadgeCategoryHeight:
		return m.MaxHeight >= def.Threshold
	case domain.BadgeCategoryAge:
		return m.HasTrees && float64(m.OldestTreeAgeDays) >= def.Threshold
	case domain.BadgeCategorySecret:
		pred := catalog.predicate(def.ID)
		return pred != nil && pred(m, trees)
	default:
		return false
	}
}

// Progress reports how far a student is towards a threshold badge, in [0,1].
// Secret badges report 1 when earned and 0 otherwise.
func Progress(def domain.BadgeDefinition, m domain.BadgeMetrics, earned bool) float64 {
	if earned {
		return 1
	}
	if def.IsSecret || def.Threshold <= 0 {
		return 0
	}

	var current float64
	switch def.Category {
	case domain.BadgeCategoryWatering:
		current = float64(m.TotalWaterings)
	case domain.BadgeCategoryHeight:
		current = m.MaxHeight
	case domain.BadgeCategoryAge:
		current = float64(m.OldestTreeAgeDays)
	}

	p := current / def.Threshold
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

func describeFailure(def domain.BadgeDefinition, err error) domain.BadgeFailure {
	return domain.BadgeFailure{BadgeID: def.ID, Error: fmt.Sprintf("%s: %v", domain.ErrMsgStoreWrite, err)}
}
