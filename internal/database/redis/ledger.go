// Package redis implements the earned-badge ledger on Redis.
//
// Each user has a set of earned badge ids and a hash holding the record
// for each id. SADD decides whether an award is new, so concurrent awards
// from separate processes insert a badge at most once.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  DialTimeout,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgPingFailed, err)
	}
	return client, nil
}

// Ledger implements repository.Ledger
type Ledger struct {
	client redis.Cmdable
	prefix string
}

var _ repository.Ledger = (*Ledger)(nil)

// NewLedger creates a ledger; an empty prefix uses DefaultKeyPrefix
func NewLedger(client redis.Cmdable, prefix string) *Ledger {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Ledger{client: client, prefix: prefix}
}

// record is the JSON value stored per badge in the user's hash
type record struct {
	Category domain.BadgeCategory `json:"category"`
	EarnedAt time.Time            `json:"earned_at"`
}

func (l *Ledger) setKey(userID string) string  { return l.prefix + userID + keySuffixSet }
func (l *Ledger) hashKey(userID string) string { return l.prefix + userID + keySuffixRecords }

// ListEarnedBadges returns the user's ledger keyed by badge id
func (l *Ledger) ListEarnedBadges(ctx context.Context, userID string) (map[string]domain.EarnedBadge, error) {
	var (
		members *redis.StringSliceCmd
		records *redis.MapStringStringCmd
	)
	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		members = pipe.SMembers(ctx, l.setKey(userID))
		records = pipe.HGetAll(ctx, l.hashKey(userID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}

	raw := records.Val()
	earned := make(map[string]domain.EarnedBadge, len(members.Val()))
	for _, badgeID := range members.Val() {
		entry := domain.EarnedBadge{UserID: userID, BadgeID: badgeID}
		if data, ok := raw[badgeID]; ok {
			var rec record
			if err := json.Unmarshal([]byte(data), &rec); err != nil {
				return nil, fmt.Errorf("%s %q: %w", ErrMsgDecodeFailed, badgeID, err)
			}
			entry.Category = rec.Category
			entry.EarnedAt = rec.EarnedAt.UTC()
		}
		earned[badgeID] = entry
	}
	return earned, nil
}

// AwardBadge adds the badge to the user's set and stores its record if absent.
// Both commands run in one MULTI so the record cannot be overwritten by a later award.
func (l *Ledger) AwardBadge(ctx context.Context, userID, badgeID string, category domain.BadgeCategory, at time.Time) (bool, error) {
	data, err := json.Marshal(record{Category: category, EarnedAt: at.UTC()})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgEncodeFailed, err)
	}

	var added *redis.IntCmd
	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, l.setKey(userID), badgeID)
		pipe.HSetNX(ctx, l.hashKey(userID), badgeID, data)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgAwardFailed, err)
	}
	return added.Val() == 1, nil
}
