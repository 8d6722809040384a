package lock

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
)

// FromConfig returns a Redis lock when an address is configured, otherwise an
// in-process one. The returned close func releases the Redis client.
func FromConfig(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (Locker, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		logger.Info("using in-process unit lock")
		return NewLocal(), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	logger.Info("using redis unit lock", zap.String("addr", cfg.Addr), zap.Duration("ttl", cfg.LockTTL))
	return NewRedis(rdb, cfg.LockTTL, WithLogger(logger)), rdb.Close, nil
}
