package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig, ttl time.Duration) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Redis{redisdb: redisdb, ttl: ttl}
}

// Ping checks redis connectivity at startup.
func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.redisdb.Close()
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.redisdb.Get(ctx, key).Result()

	if err != nil {
		if err != redis.Nil {
			slog.Default().WarnContext(ctx, "redis get failed", "key", key, "err", err)
		}
		return "", false
	}

	return val, true
}

// Set failures are logged and swallowed: a cache miss next time is the
// worst outcome.
func (c *Redis) Set(ctx context.Context, key, val string) {
	if err := c.redisdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		slog.Default().WarnContext(ctx, "redis set failed", "key", key, "err", err)
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	if err := c.redisdb.Del(ctx, key).Err(); err != nil {
		slog.Default().WarnContext(ctx, "redis del failed", "key", key, "err", err)
	}
}
