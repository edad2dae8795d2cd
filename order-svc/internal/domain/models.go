package domain

import (
	"encoding/json"
	"math"
	"time"
)

type CartItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// CartOwner identifies whose cart is addressed: a signed-in user or a
// guest session. UserID wins when both are set.
type CartOwner struct {
	UserID    string
	SessionID string
}

func (o CartOwner) IsGuest() bool {
	return o.UserID == ""
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

type Cart struct {
	Items  []CartItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// MenuSnapshot is the live menu data a cart line or order line is priced from.
type MenuSnapshot struct {
	ID       int
	Name     string
	Price    float64
	ImageURL string
	InStock  bool
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

type Order struct {
	ID            int         `json:"id"`
	UserID        *string     `json:"user_id,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	Notes         string      `json:"notes"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"delivery_fee"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID         int     `json:"id"`
	OrderID    int     `json:"order_id"`
	MenuItemID int     `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Subtotal   float64 `json:"subtotal"`
}

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type CheckoutRequest struct {
	CustomerName  string       `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string       `json:"customer_email" validate:"required,email"`
	CustomerPhone string       `json:"customer_phone" validate:"required,phone"`
	Address       string       `json:"address" validate:"required,min=10,max=500"`
	Notes         string       `json:"notes" validate:"max=500"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=card cash"`
	Card          *CardDetails `json:"card,omitempty"`
}

type OrderFilter struct {
	Status string
	Page   int
	Limit  int
}

type OrderPage struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Notification is published to Kafka and turned into an email by notify-svc.
type Notification struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

const NotificationOrderConfirmation = "order_confirmation"

type OrderConfirmation struct {
	OrderID       int                     `json:"order_id"`
	CustomerName  string                  `json:"customer_name"`
	CustomerEmail string                  `json:"customer_email"`
	Address       string                  `json:"address"`
	PaymentMethod string                  `json:"payment_method"`
	Items         []OrderConfirmationLine `json:"items"`
	Subtotal      float64                 `json:"subtotal"`
	DeliveryFee   float64                 `json:"delivery_fee"`
	Tax           float64                 `json:"tax"`
	Total         float64                 `json:"total"`
}

type OrderConfirmationLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
