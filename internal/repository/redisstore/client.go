// Package redisstore holds the Redis-backed stores.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tradedesk/internal/config"
)

// NewClient parses cfg.URL and checks connectivity.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}
