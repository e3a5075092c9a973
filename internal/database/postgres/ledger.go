package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// LedgerRepository implements repository.Ledger on the earned_badges table
type LedgerRepository struct {
	db *pgxpool.Pool
}

var _ repository.Ledger = (*LedgerRepository)(nil)

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListEarnedBadges returns the user's ledger keyed by badge id
func (r *LedgerRepository) ListEarnedBadges(ctx context.Context, userID string) (map[string]domain.EarnedBadge, error) {
	uid, ok := parseID(userID)
	if !ok {
		return map[string]domain.EarnedBadge{}, nil
	}

	rows, err := r.db.Query(ctx, sqlSelectEarnedBadges, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBadges, err)
	}

	earned := make(map[string]domain.EarnedBadge)
	var (
		badgeID, category string
		at                time.Time
	)
	_, err = pgx.ForEachRow(rows, []any{&badgeID, &category, &at}, func() error {
		earned[badgeID] = domain.EarnedBadge{
			UserID:   userID,
			BadgeID:  badgeID,
			Category: domain.BadgeCategory(category),
			EarnedAt: at.UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBadges, err)
	}
	return earned, nil
}

// AwardBadge inserts the record unless it already exists. The primary key on
// (user_id, badge_id) makes concurrent awards from separate processes safe.
func (r *LedgerRepository) AwardBadge(ctx context.Context, userID, badgeID string, category domain.BadgeCategory, at time.Time) (bool, error) {
	uid, ok := parseID(userID)
	if !ok {
		return false, fmt.Errorf("%w: user id must be a uuid", domain.ErrInvalidInput)
	}
	tag, err := r.db.Exec(ctx, sqlInsertEarnedBadge, uid, badgeID, string(category), at)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToAwardBadge, err)
	}
	return tag.RowsAffected() == 1, nil
}
