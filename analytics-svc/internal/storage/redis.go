package storage

import (
	"context"
	"encoding/json"
	"time"

	"restaurant-ordering/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const dashboardKey = "analytics:dashboard"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetDashboard(ctx context.Context) (*domain.Dashboard, bool) {
	raw, err := c.Client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	var d domain.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (c *RedisCache) SetDashboard(ctx context.Context, d *domain.Dashboard) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, dashboardKey, payload, c.TTL).Err()
}
