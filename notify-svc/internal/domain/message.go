package domain

import (
	"encoding/json"
	"time"
)

// Notification is the envelope order-svc and account-svc publish on the
// notifications topic.
type Notification struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	TypeOrderConfirmation = "order_confirmation"
	TypeAdminVerification = "admin_verification"
	TypeNewsletterWelcome = "newsletter_welcome"
	TypeTestEmail         = "test_email"
)

type OrderConfirmation struct {
	OrderID       int                     `json:"order_id" validate:"required"`
	CustomerName  string                  `json:"customer_name" validate:"required"`
	CustomerEmail string                  `json:"customer_email" validate:"required,email"`
	Address       string                  `json:"address"`
	PaymentMethod string                  `json:"payment_method"`
	Items         []OrderConfirmationLine `json:"items" validate:"required,min=1"`
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

type AdminVerification struct {
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"full_name"`
	VerifyURL string `json:"verify_url" validate:"required,url"`
}

type NewsletterWelcome struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}

type TestEmail struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"max=5000"`
}

// Email is a rendered message ready for a provider.
type Email struct {
	To      string
	Subject string
	HTML    string
}
