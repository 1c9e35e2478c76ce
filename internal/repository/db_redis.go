// Package repository contains the repository layer for the Yeshua-Christ API
package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeshuachrist/ycapi/internal/config"
)

// ConnectRedis connects to Redis and returns a client
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	// Setup Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(redisOpts)

	// Check Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return redisClient, nil
}
