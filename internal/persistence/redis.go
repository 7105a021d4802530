package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/config"
)

// Redis holds the shared go-redis client backing the recent-query cache.
// The helpdesk degrades to database reads when Redis is unreachable, so
// construction never fails on a dead server.
type Redis struct {
	Client *redis.Client
}

// NewRedis dials Redis with the configured address and probes it once.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	probeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		logger.Warn("redis unreachable, recent-query cache will fall back to the database",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("redis connection established", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client}
}

// Close releases the underlying client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping reports whether Redis is currently reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
