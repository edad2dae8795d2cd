package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"restaurant-ordering/analytics-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) Revenue(ctx context.Context, dayStart time.Time) (domain.Revenue, error) {
	var rev domain.Revenue
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COALESCE(SUM(total) FILTER (WHERE created_at >= $1), 0)
		FROM orders
		WHERE status <> $2`, dayStart, domain.StatusCancelled).
		Scan(&rev.Total, &rev.TodayOrders, &rev.TodayRevenue)
	if err != nil {
		return rev, fmt.Errorf("revenue: %w", err)
	}
	return rev, nil
}

func (r *PostgresRepository) MenuCounts(ctx context.Context) (domain.MenuCounts, error) {
	var mc domain.MenuCounts
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT in_stock) FROM menu_items`).
		Scan(&mc.Items, &mc.OutOfStock)
	if err != nil {
		return mc, fmt.Errorf("menu counts: %w", err)
	}
	return mc, nil
}

// TopItems ranks order lines by quantity sold, grouped by the name captured
// at checkout so deleted dishes still count.
func (r *PostgresRepository) TopItems(ctx context.Context, limit int) ([]domain.TopItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.name, SUM(oi.quantity) AS qty, SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> $1
		GROUP BY oi.name
		ORDER BY qty DESC, oi.name
		LIMIT $2`, domain.StatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()

	items := []domain.TopItem{}
	for rows.Next() {
		var it domain.TopItem
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Revenue); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
