package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lock shared by every replica pointing at the same Redis.
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// RedisOption customizes a Redis lock.
type RedisOption func(*Redis)

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = strings.Trim(prefix, ":") }
}

// WithRetryInterval sets how long Lock waits between attempts.
func WithRetryInterval(d time.Duration) RedisOption {
	return func(r *Redis) { r.retry = d }
}

// WithLogger attaches a logger for release failures.
func WithLogger(logger *zap.Logger) RedisOption {
	return func(r *Redis) { r.logger = logger }
}

// NewRedis builds a lock whose keys expire after ttl if never released.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{
		rdb:    rdb,
		prefix: "inventory:lock",
		ttl:    ttl,
		retry:  25 * time.Millisecond,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Lock polls SET NX PX until it wins or ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	name := r.prefix + ":" + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.rdb.SetNX(ctx, name, token, r.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			return r.releaser(name, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Redis) releaser(name, token string) func() {
	return func() {
		// The caller's context may already be cancelled; release must still run.
		ctx, cancel := context.WithTimeout(context.Background(), r.ttl)
		defer cancel()

		if err := releaseScript.Run(ctx, r.rdb, []string{name}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			r.logger.Warn("failed to release lock", zap.String("key", name), zap.Error(err))
		}
	}
}
