package service

import (
	"context"

	"restaurant-ordering/order-svc/internal/domain"
)

// CartStore persists one cart per key. Guest carts live in Redis keyed by
// session id, user carts in Postgres keyed by user id.
type CartStore interface {
	Load(ctx context.Context, key string) ([]domain.CartItem, error)
	Save(ctx context.Context, key string, items []domain.CartItem) error
	Delete(ctx context.Context, key string) error
}

type MenuReader interface {
	MenuSnapshots(ctx context.Context, ids []int) (map[int]domain.MenuSnapshot, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int) (int64, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type NotificationPublisher interface {
	Publish(ctx context.Context, msg domain.Notification) error
}

type CartServiceInterface interface {
	Get(ctx context.Context, owner domain.CartOwner) (domain.Cart, error)
	Add(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error)
	Remove(ctx context.Context, owner domain.CartOwner, menuItemID int) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error)
	Clear(ctx context.Context, owner domain.CartOwner) error
	Merge(ctx context.Context, sessionID, userID string) (domain.Cart, error)
}

type CheckoutServiceInterface interface {
	PlaceOrder(ctx context.Context, owner domain.CartOwner, req domain.CheckoutRequest) (*domain.Order, error)
}

type OrderServiceInterface interface {
	Get(ctx context.Context, id int) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) (*domain.OrderPage, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
	QRCode(ctx context.Context, id int) ([]byte, error)
	QRLink(orderID int) string
}

var (
	_ CartServiceInterface     = (*CartService)(nil)
	_ CheckoutServiceInterface = (*CheckoutService)(nil)
	_ OrderServiceInterface    = (*OrderService)(nil)
)
