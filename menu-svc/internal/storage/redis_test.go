package storage

import (
	"context"
	"testing"
	"time"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCache_SetGetInvalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.GetMenu(ctx, "all")
	assert.False(t, ok)

	items := []domain.MenuItem{{ID: 1, Name: "Margherita", Price: 11.5, InStock: true}}
	require.NoError(t, cache.SetMenu(ctx, "all", items))
	require.NoError(t, cache.SetMenu(ctx, "featured", items[:0]))

	got, ok := cache.GetMenu(ctx, "all")
	require.True(t, ok)
	assert.Equal(t, "Margherita", got[0].Name)

	got, ok = cache.GetMenu(ctx, "featured")
	require.True(t, ok)
	assert.Empty(t, got)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok = cache.GetMenu(ctx, "all")
	assert.False(t, ok)
	assert.False(t, mr.Exists(menuListsKey))
}

func TestRedisCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetMenu(ctx, "all", []domain.MenuItem{{ID: 1}}))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.GetMenu(ctx, "all")
	assert.False(t, ok)
}
