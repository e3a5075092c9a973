package repository

import (
	"context"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// Ledger is the set of earned badges keyed by (user, badge id)
type Ledger interface {
	ListEarnedBadges(ctx context.Context, userID string) (map[string]domain.EarnedBadge, error)
	// AwardBadge inserts the record if absent. inserted is false when the
	// user already held the badge; that is not an error.
	AwardBadge(ctx context.Context, userID, badgeID string, category domain.BadgeCategory, at time.Time) (inserted bool, err error)
}
