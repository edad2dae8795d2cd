package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// GuestCartStore keeps anonymous carts in Redis keyed by session id. Every
// write renews the TTL.
type GuestCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewGuestCartStore(client *redis.Client, ttl time.Duration) *GuestCartStore {
	return &GuestCartStore{Client: client, TTL: ttl}
}

func (c *GuestCartStore) Key(sessionID string) string {
	return "cart:guest:" + sessionID
}

func (c *GuestCartStore) Load(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	raw, err := c.Client.Get(ctx, c.Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *GuestCartStore) Save(ctx context.Context, sessionID string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.Key(sessionID), raw, c.TTL).Err()
}

func (c *GuestCartStore) Delete(ctx context.Context, sessionID string) error {
	return c.Client.Del(ctx, c.Key(sessionID)).Err()
}
