package repositories

import (
	"context"
	"fmt"
	"log"

	"minibank/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client for cfg and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	log.Printf("Connecting to Redis at %s (DB %d)", cfg.Addr(), cfg.DB)
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Println("✅ Redis connection verified")
	return client, nil
}
