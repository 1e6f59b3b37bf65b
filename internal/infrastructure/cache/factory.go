package cache

import (
	"context"

	"github.com/erp/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns the Redis store when Redis is enabled and
// reachable, and the in-memory store otherwise.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) IdempotencyStore {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	client, err := NewRedisClient(ctx, cfg.Addr(), cfg.Password, cfg.DB)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
			"Duplicate requests hitting different instances will not be detected.",
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}
	logger.Info("using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return NewRedisIdempotencyStore(client, "")
}
