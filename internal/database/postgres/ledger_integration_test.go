package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

func TestLedgerRepository_AwardIsIdempotent(t *testing.T) {
	repo := NewLedgerRepository(requirePool(t))
	ctx := context.Background()
	userID := uuid.NewString()
	first := time.Now().UTC().Truncate(time.Microsecond)

	inserted, err := repo.AwardBadge(ctx, userID, "first_sip", domain.BadgeCategoryWatering, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.AwardBadge(ctx, userID, "first_sip", domain.BadgeCategoryWatering, first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, inserted)

	earned, err := repo.ListEarnedBadges(ctx, userID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, first, earned["first_sip"].EarnedAt, "the original timestamp is kept")
	assert.Equal(t, domain.BadgeCategoryWatering, earned["first_sip"].Category)
}

func TestLedgerRepository_ConcurrentAwardsInsertOnce(t *testing.T) {
	repo := NewLedgerRepository(requirePool(t))
	ctx := context.Background()
	userID := uuid.NewString()

	var (
		wg       sync.WaitGroup
		inserted atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AwardBadge(ctx, userID, "sprout", domain.BadgeCategoryHeight, time.Now())
			assert.NoError(t, err)
			if ok {
				inserted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), inserted.Load())
}

func TestLedgerRepository_EmptyAndInvalidUser(t *testing.T) {
	repo := NewLedgerRepository(requirePool(t))
	ctx := context.Background()

	earned, err := repo.ListEarnedBadges(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, earned)

	earned, err = repo.ListEarnedBadges(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, earned)

	_, err = repo.AwardBadge(ctx, "nope", "sprout", domain.BadgeCategoryHeight, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
