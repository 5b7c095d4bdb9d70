package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AIRateLimiter caps the number of language-model-backed requests a user can
// make per window. Counters live in Redis so the limit holds across
// replicas.
type AIRateLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

// NewAIRateLimiter creates a limiter allowing maxRequests per window per
// user.
func NewAIRateLimiter(client *redis.Client, maxRequests int, window time.Duration) *AIRateLimiter {
	return &AIRateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records one request for the user and returns an error when the
// window quota is exhausted. Redis unavailability fails open: scouting
// requests should not be blocked by a cache outage.
func (rl *AIRateLimiter) Allow(ctx context.Context, userID string) error {
	key := fmt.Sprintf("ratelimit:ai:%s", userID)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		rl.client.Expire(ctx, key, rl.window)
	}

	if count > int64(rl.maxRequests) {
		ttl, _ := rl.client.TTL(ctx, key).Result()
		return fmt.Errorf("rate limit exceeded: maximum %d AI requests per %v, retry in %v", rl.maxRequests, rl.window, ttl.Round(time.Second))
	}
	return nil
}

// Remaining reports how many requests the user has left in the current
// window.
func (rl *AIRateLimiter) Remaining(ctx context.Context, userID string) int {
	key := fmt.Sprintf("ratelimit:ai:%s", userID)
	count, err := rl.client.Get(ctx, key).Int()
	if err != nil {
		return rl.maxRequests
	}
	remaining := rl.maxRequests - count
	if remaining < 0 {
		return 0
	}
	return remaining
}
