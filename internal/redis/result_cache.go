// Package redis caches the most recent analysis report per user.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pscheid92/mindpulse/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// ResultCache implements domain.ResultCache with one JSON value per user
// under a TTL. A cache miss is signalled with domain.ErrResultNotFound.
type ResultCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewResultCache creates a cache from a Redis URL (e.g. "redis://localhost:6379").
func NewResultCache(redisURL string, ttl time.Duration) (*ResultCache, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &ResultCache{rdb: goredis.NewClient(opts), ttl: ttl}, nil
}

func cacheKey(userID string) string {
	return "mindpulse:result:" + userID
}

func (c *ResultCache) GetResult(ctx context.Context, userID string) (*domain.AnalysisReport, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached result: %w", err)
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &report, nil
}

func (c *ResultCache) SetResult(ctx context.Context, report domain.AnalysisReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey(report.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection, for readiness checks.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *ResultCache) Close() error {
	return c.rdb.Close()
}
