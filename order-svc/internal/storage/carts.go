package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"restaurant-ordering/order-svc/internal/domain"
)

// UserCartStore keeps the carts of signed-in users as JSONB in user_carts.
type UserCartStore struct {
	DB *sql.DB
}

func NewUserCartStore(db *sql.DB) *UserCartStore {
	return &UserCartStore{DB: db}
}

func (s *UserCartStore) Load(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx, `SELECT items FROM user_carts WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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

func (s *UserCartStore) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO user_carts (user_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`, userID, string(raw))
	return err
}

func (s *UserCartStore) Delete(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM user_carts WHERE user_id = $1`, userID)
	return err
}
