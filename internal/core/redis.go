// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/garage-saas/internal/config"
)

const (
	redisCommandTimeout = 2 * time.Second
	redisPoolTimeout    = 5 * time.Second
	defaultRedisPool    = 10
)

// Redis holds the shared rate limit counters and nothing else; every
// garage record lives in postgres.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	r := &Redis{Client: redis.NewClient(opts)}
	if err := r.Ping(ctx); err != nil {
		_ = r.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return r, nil
}

// redisOptions keeps command timeouts short so a slow redis degrades the
// limiter to its local fallback instead of stalling requests.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = defaultRedisPool
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = redisPoolTimeout
	opts.ReadTimeout = redisCommandTimeout
	opts.WriteTimeout = redisCommandTimeout
	opts.ConnMaxIdleTime = 5 * time.Minute

	return opts, nil
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisCommandTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

// PoolStats feeds the redis pool gauges on the metrics endpoint.
func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
