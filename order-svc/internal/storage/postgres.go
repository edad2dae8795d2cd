package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) MenuSnapshots(ctx context.Context, ids []int) (map[int]domain.MenuSnapshot, error) {
	out := make(map[int]domain.MenuSnapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, COALESCE(image_url, ''), in_stock
		FROM menu_items
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query menu snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.MenuSnapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.ImageURL, &s.InStock); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

// CreateOrder writes the order row and its items in a single transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, customer_name, customer_email, customer_phone, address, notes,
			subtotal, delivery_fee, tax, total, status, payment_status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, order.UserID, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.Address, order.Notes,
		order.Subtotal, order.DeliveryFee, order.Tax, order.Total, order.Status, order.PaymentStatus, order.PaymentMethod).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, order.ID, it.MenuItemID, it.Name, it.Quantity, it.Price, it.Subtotal).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit()
}

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone, address, notes,
	subtotal, delivery_fee, tax, total, status, payment_status, payment_method, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner) (domain.Order, error) {
	var (
		o      domain.Order
		userID sql.NullString
	)
	err := row.Scan(&o.ID, &userID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.Address, &o.Notes,
		&o.Subtotal, &o.DeliveryFee, &o.Tax, &o.Total, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt)
	if userID.Valid {
		o.UserID = &userID.String
	}
	return o, err
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, r.attachItems(ctx, orders)
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, COALESCE(menu_item_id, 0), name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	orders := []domain.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, clause, len(args)-1, len(args))
	orders, err := r.queryOrders(ctx, query, args...)
	return orders, total, err
}

func (r *PostgresRepository) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *PostgresRepository) updateOrder(ctx context.Context, column string, id int, value string) (*domain.Order, error) {
	query := fmt.Sprintf(`UPDATE orders SET %s = $1, updated_at = NOW() WHERE id = $2 RETURNING %s`, column, orderColumns)
	o, err := scanOrder(r.DB.QueryRowContext(ctx, query, value, id))
	if err != nil {
		return nil, notFound(err)
	}
	orders := []domain.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	return r.updateOrder(ctx, "status", id, status)
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	return r.updateOrder(ctx, "payment_status", id, status)
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr)
	if err != nil {
		return nil, notFound(err)
	}
	return qr, nil
}
