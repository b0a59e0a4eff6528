package repositories

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"minibank/internal/config"
	"minibank/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewIdempotencyStore(ctx, config.Config{IdempotencyBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStore{}, store)

	store, err = NewIdempotencyStore(ctx, config.Config{IdempotencyBackend: config.BackendNone})
	require.NoError(t, err)
	assert.Nil(t, store)

	_, err = NewIdempotencyStore(ctx, config.Config{IdempotencyBackend: "memcached"})
	assert.Error(t, err)
}

func TestCacheService_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	host, port, _ := strings.Cut(addr, ":")

	ctx := context.Background()
	client, err := NewRedisClient(ctx, config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	svc := cache.NewCacheService(client)
	defer svc.Close()
	require.NoError(t, svc.HealthCheck(ctx))

	defer svc.Delete(ctx, "test:idem", "test:lock")

	require.NoError(t, svc.SetWithTTL(ctx, "test:idem", map[string]int{"status": 200}, time.Minute))
	var got map[string]int
	found, err := svc.Get(ctx, "test:idem", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 200, got["status"])

	ok, err := svc.Lock(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.Lock(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
