package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant-ordering/notify-svc/internal/domain"
	"restaurant-ordering/validation"

	"github.com/sirupsen/logrus"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

type Notifier struct {
	mailer      Mailer
	templates   *Templates
	subscribers SubscriberRepository
	restaurant  string
	log         *logrus.Entry
}

func NewNotifier(mailer Mailer, templates *Templates, subscribers SubscriberRepository, restaurant string, log *logrus.Entry) *Notifier {
	return &Notifier{mailer: mailer, templates: templates, subscribers: subscribers, restaurant: restaurant, log: log}
}

func (n *Notifier) send(ctx context.Context, template, to, subject string, data interface{}) (string, error) {
	if err := validation.Struct(data); err != nil {
		return "", err
	}
	html, err := n.templates.Render(template, data)
	if err != nil {
		return "", err
	}
	id, err := n.mailer.Send(ctx, domain.Email{To: to, Subject: subject, HTML: html})
	if err != nil {
		return "", fmt.Errorf("send %s: %w", template, err)
	}
	n.log.WithFields(logrus.Fields{"template": template, "message_id": id}).Info("Email sent")
	return id, nil
}

func (n *Notifier) SendOrderConfirmation(ctx context.Context, msg domain.OrderConfirmation) (string, error) {
	subject := fmt.Sprintf("%s: order #%d confirmed", n.restaurant, msg.OrderID)
	return n.send(ctx, domain.TypeOrderConfirmation, msg.CustomerEmail, subject, msg)
}

func (n *Notifier) SendAdminVerification(ctx context.Context, msg domain.AdminVerification) (string, error) {
	return n.send(ctx, domain.TypeAdminVerification, msg.Email, "You're invited to manage "+n.restaurant, msg)
}

func (n *Notifier) SendNewsletterWelcome(ctx context.Context, msg domain.NewsletterWelcome) (string, error) {
	return n.send(ctx, domain.TypeNewsletterWelcome, msg.Email, "Welcome to the "+n.restaurant+" newsletter", msg)
}

func (n *Notifier) SendTestEmail(ctx context.Context, msg domain.TestEmail) (string, error) {
	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = n.restaurant + " test email"
	}
	return n.send(ctx, domain.TypeTestEmail, msg.To, subject, msg)
}

// Subscribe records a newsletter subscriber and greets new ones.
func (n *Notifier) Subscribe(ctx context.Context, msg domain.NewsletterWelcome) (string, error) {
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	if err := validation.Struct(msg); err != nil {
		return "", err
	}
	created, err := n.subscribers.AddSubscriber(ctx, msg.Email)
	if err != nil {
		return "", err
	}
	if !created {
		return "", ErrAlreadySubscribed
	}
	return n.SendNewsletterWelcome(ctx, msg)
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Dispatch sends the email matching the notification type.
func (n *Notifier) Dispatch(ctx context.Context, note domain.Notification) (string, error) {
	switch note.Type {
	case domain.TypeOrderConfirmation:
		var msg domain.OrderConfirmation
		if err := decodePayload(note.Payload, &msg); err != nil {
			return "", err
		}
		return n.SendOrderConfirmation(ctx, msg)
	case domain.TypeAdminVerification:
		var msg domain.AdminVerification
		if err := decodePayload(note.Payload, &msg); err != nil {
			return "", err
		}
		return n.SendAdminVerification(ctx, msg)
	case domain.TypeNewsletterWelcome:
		var msg domain.NewsletterWelcome
		if err := decodePayload(note.Payload, &msg); err != nil {
			return "", err
		}
		return n.SendNewsletterWelcome(ctx, msg)
	case domain.TypeTestEmail:
		var msg domain.TestEmail
		if err := decodePayload(note.Payload, &msg); err != nil {
			return "", err
		}
		return n.SendTestEmail(ctx, msg)
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownType, note.Type)
}
