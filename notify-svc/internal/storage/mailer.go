package storage

import (
	"context"
	"fmt"
	"time"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPSender is satisfied by *gomail.Dialer.
type SMTPSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	Sender SMTPSender
	From   string
	Domain string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Sender: gomail.NewDialer(host, port, username, password),
		From:   from,
		Domain: host,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.Domain)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetHeader("Message-Id", id)
	msg.SetBody("text/html", email.HTML)

	if err := m.Sender.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("smtp: %w", err)
	}
	return id, nil
}

// APIMailer sends through an HTTP email API shaped like Resend's
// POST /emails.
type APIMailer struct {
	Client *resty.Client
	From   string
}

func NewAPIMailer(baseURL, apiKey, from string) *APIMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)
	return &APIMailer{Client: client, From: from}
}

type apiEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type apiResult struct {
	ID string `json:"id"`
}

func (m *APIMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	var result apiResult
	resp, err := m.Client.R().
		SetContext(ctx).
		SetBody(apiEmail{From: m.From, To: []string{email.To}, Subject: email.Subject, HTML: email.HTML}).
		SetResult(&result).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("email api: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("email api: %s: %s", resp.Status(), resp.String())
	}
	return result.ID, nil
}
