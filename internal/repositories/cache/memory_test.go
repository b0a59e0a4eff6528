package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var got entry
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetWithTTL(ctx, "k", entry{Status: 200, Body: "{}"}, time.Minute))
	found, err = store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Status: 200, Body: "{}"}, got)

	require.NoError(t, store.Delete(ctx, "k"))
	found, err = store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetWithTTL(ctx, "k", "v", time.Second))
	ok, err := store.Lock(ctx, "lock", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)

	var got string
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = store.Lock(ctx, "lock", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_Lock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.Lock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Lock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "lock"))
	ok, err = store.Lock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
