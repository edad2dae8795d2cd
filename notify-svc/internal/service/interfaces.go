package service

import (
	"context"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Mailer hands a rendered email to a provider and returns its message id.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) (string, error)
}

type SubscriberRepository interface {
	// AddSubscriber reports false when email was already subscribed.
	AddSubscriber(ctx context.Context, email string) (bool, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type NotifierInterface interface {
	SendOrderConfirmation(ctx context.Context, msg domain.OrderConfirmation) (string, error)
	SendAdminVerification(ctx context.Context, msg domain.AdminVerification) (string, error)
	SendNewsletterWelcome(ctx context.Context, msg domain.NewsletterWelcome) (string, error)
	SendTestEmail(ctx context.Context, msg domain.TestEmail) (string, error)
	Subscribe(ctx context.Context, msg domain.NewsletterWelcome) (string, error)
	Dispatch(ctx context.Context, n domain.Notification) (string, error)
}

var (
	_ NotifierInterface = (*Notifier)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
)
