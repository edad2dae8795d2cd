package storage

import (
	"context"
	"encoding/json"
	"time"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// menuListsKey is a hash of cached listings keyed by filter, dropped as a
// whole on any menu write.
const menuListsKey = "menu:lists"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetMenu(ctx context.Context, key string) ([]domain.MenuItem, bool) {
	raw, err := c.Client.HGet(ctx, menuListsKey, key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisCache) SetMenu(ctx context.Context, key string, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	pipe := c.Client.TxPipeline()
	pipe.HSet(ctx, menuListsKey, key, payload)
	pipe.Expire(ctx, menuListsKey, c.TTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, menuListsKey).Err()
}
