package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces per-actor cooldowns on write actions
// (review/post creation). A nil client disables limiting.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

func rateLimitKey(actorID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:actor:%s:%s", actorID.String(), action)
}

// CheckAndSet returns true when the action is allowed and arms the cooldown.
func (l *RateLimiter) CheckAndSet(ctx context.Context, actorID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, rateLimitKey(actorID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// TTL reports how long the caller has to wait before retrying.
func (l *RateLimiter) TTL(ctx context.Context, actorID uuid.UUID, action string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, rateLimitKey(actorID, action)).Result()
}

// Clear releases a cooldown, used to roll back when the guarded
// action itself failed.
func (l *RateLimiter) Clear(ctx context.Context, actorID uuid.UUID, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	_, err := l.rdb.Del(ctx, rateLimitKey(actorID, action)).Result()
	return err
}
