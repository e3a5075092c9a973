package badge

import (
	"context"
	"maps"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// CacheSchemaVersion is bumped when the cached structure changes so old entries are ignored
const CacheSchemaVersion = "1.0"

type cachedLedgerEntry struct {
	Version  string
	Earned   map[string]domain.EarnedBadge
	CachedAt time.Time
}

// CachedLedger is a read-through LRU cache in front of a Ledger.
// The ledger is append-only, so a stale entry can only be missing badges;
// the evaluator then retries an insert that the store ignores. Awards made by
// other processes sharing the store appear once the entry expires.
type CachedLedger struct {
	inner repository.Ledger
	lru   *expirable.LRU[string, *cachedLedgerEntry]
}

var _ repository.Ledger = (*CachedLedger)(nil)

// NewCachedLedger wraps inner with a cache of size users and the given TTL
func NewCachedLedger(inner repository.Ledger, size int, ttl time.Duration) *CachedLedger {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedLedger{
		inner: inner,
		lru:   expirable.NewLRU[string, *cachedLedgerEntry](size, nil, ttl),
	}
}

// ListEarnedBadges serves from cache when possible. Callers get a copy.
func (c *CachedLedger) ListEarnedBadges(ctx context.Context, userID string) (map[string]domain.EarnedBadge, error) {
	if entry, ok := c.lru.Get(userID); ok {
		if entry.Version == CacheSchemaVersion {
			return maps.Clone(entry.Earned), nil
		}
		c.lru.Remove(userID)
	}

	earned, err := c.inner.ListEarnedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	if earned == nil {
		earned = map[string]domain.EarnedBadge{}
	}

	c.lru.Add(userID, &cachedLedgerEntry{
		Version:  CacheSchemaVersion,
		Earned:   maps.Clone(earned),
		CachedAt: time.Now(),
	})
	return earned, nil
}

// AwardBadge writes through and keeps a cached entry in step
func (c *CachedLedger) AwardBadge(ctx context.Context, userID, badgeID string, category domain.BadgeCategory, at time.Time) (bool, error) {
	inserted, err := c.inner.AwardBadge(ctx, userID, badgeID, category, at)
	if err != nil {
		return false, err
	}

	if !inserted {
		// Somebody else's award; the cached view is behind
		c.lru.Remove(userID)
		return false, nil
	}

	if entry, ok := c.lru.Peek(userID); ok && entry.Version == CacheSchemaVersion {
		updated := maps.Clone(entry.Earned)
		updated[badgeID] = domain.EarnedBadge{UserID: userID, BadgeID: badgeID, Category: category, EarnedAt: at}
		c.lru.Add(userID, &cachedLedgerEntry{Version: CacheSchemaVersion, Earned: updated, CachedAt: entry.CachedAt})
	}
	return true, nil
}

// Invalidate drops the cached entry for a user
func (c *CachedLedger) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Len reports the number of cached users
func (c *CachedLedger) Len() int {
	return c.lru.Len()
}
