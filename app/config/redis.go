package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client using environment variables.
// Redis only backs the dashboard stats cache, so an empty REDIS_ADDR
// returns (nil, nil) and the service runs without caching.
func NewRedisClient() (*redis.Client, error) {
	addr := GetString("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     GetString("REDIS_PASSWORD", ""),
		DB:           GetInt("REDIS_DB", 0),
		PoolSize:     GetInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: GetInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
