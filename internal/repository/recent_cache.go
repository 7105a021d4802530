package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// recentQueriesKey is the Redis list holding the newest queries first.
const recentQueriesKey = "helpdesk:recent_queries"

type cachedQuery struct {
	RequestID string `json:"request_id"`
	Query     string `json:"query"`
}

// RecentQueryCache decorates a RequestRepository with a Redis-backed
// window of recent queries so the duplicate check does not hit the
// primary store on every submission. The cache is best-effort: any
// Redis failure falls back to the underlying repository.
type RecentQueryCache struct {
	RequestRepository
	client *redis.Client
	window int
	logger *zap.Logger
}

// NewRecentQueryCache wraps the repository. A nil client disables the
// cache and everything passes straight through.
func NewRecentQueryCache(inner RequestRepository, client *redis.Client, window int, logger *zap.Logger) *RecentQueryCache {
	if window <= 0 {
		window = 20
	}
	return &RecentQueryCache{
		RequestRepository: inner,
		client:            client,
		window:            window,
		logger:            logger,
	}
}

// Create persists through the underlying repository, then records the
// query in the cache window.
func (c *RecentQueryCache) Create(ctx context.Context, request *domain.Request) error {
	if err := c.RequestRepository.Create(ctx, request); err != nil {
		return err
	}
	c.push(ctx, request)
	return nil
}

// ListRecent serves the duplicate-check window from Redis when possible,
// falling back to the store scan.
func (c *RecentQueryCache) ListRecent(ctx context.Context, limit int) ([]domain.Request, error) {
	if limit <= 0 {
		limit = c.window
	}
	if c.client != nil {
		raw, err := c.client.LRange(ctx, recentQueriesKey, 0, int64(limit-1)).Result()
		if err == nil && len(raw) > 0 {
			recent := make([]domain.Request, 0, len(raw))
			for _, item := range raw {
				var cached cachedQuery
				if json.Unmarshal([]byte(item), &cached) != nil {
					continue
				}
				recent = append(recent, domain.Request{RequestID: cached.RequestID, Query: cached.Query})
			}
			if len(recent) > 0 {
				return recent, nil
			}
		}
	}
	return c.RequestRepository.ListRecent(ctx, limit)
}

func (c *RecentQueryCache) push(ctx context.Context, request *domain.Request) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(cachedQuery{RequestID: request.RequestID, Query: request.Query})
	if err != nil {
		return
	}
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, recentQueriesKey, payload)
	pipe.LTrim(ctx, recentQueriesKey, 0, int64(c.window-1))
	if _, err := pipe.Exec(ctx); err != nil && c.logger != nil {
		c.logger.Warn("failed to cache recent query", zap.Error(err))
	}
}
