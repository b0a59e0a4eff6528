package repositories

import (
	"context"
	"fmt"

	"minibank/internal/config"
	"minibank/internal/repositories/cache"
)

// NewIdempotencyStore opens the response cache selected by
// cfg.IdempotencyBackend. It returns nil for BackendNone.
func NewIdempotencyStore(ctx context.Context, cfg config.Config) (cache.Store, error) {
	switch cfg.IdempotencyBackend {
	case "", config.BackendMemory:
		return cache.NewMemoryStore(), nil
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return cache.NewCacheService(client), nil
	case config.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.IdempotencyBackend)
	}
}
