package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{
		client: client,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found")
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// analysisKeyPatterns covers every cached derived result. All of them embed
// percentiles computed against one aggregate snapshot, so they go stale
// together when the aggregates are recomputed.
var analysisKeyPatterns = []string{"search:*", "profile:*", "swot:*", "comparison:*"}

// InvalidateAnalysisCaches drops every cached analysis result. Rate-limit
// counters and LLM response caches share the Redis database and are left
// alone.
func (s *CacheService) InvalidateAnalysisCaches(ctx context.Context) (int64, error) {
	var deleted int64
	for _, pattern := range analysisKeyPatterns {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.Delete(ctx, keys...); err != nil {
			return deleted, err
		}
		deleted += int64(len(keys))
	}
	return deleted, nil
}

// Cache key generators
func SearchCacheKey(queryHash string) string {
	return fmt.Sprintf("search:%s", queryHash)
}

func ProfileCacheKey(playerID int) string {
	return fmt.Sprintf("profile:%d", playerID)
}

func SwotCacheKey(playerID int, language string) string {
	return fmt.Sprintf("swot:%d:%s", playerID, language)
}

func ComparisonCacheKey(id1, id2 int) string {
	if id2 < id1 {
		id1, id2 = id2, id1
	}
	return fmt.Sprintf("comparison:%d:%d", id1, id2)
}

// SetWithRetry writes a cache entry with bounded retries, for results that
// are expensive to recompute on a cache miss.
func (s *CacheService) SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = s.Set(ctx, key, value, expiration); err == nil {
			return nil
		}
		logrus.Warnf("Cache set failed (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	return err
}
