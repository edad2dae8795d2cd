package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	"restaurant-ordering/migrations"
	httpapi "restaurant-ordering/notify-svc/internal/api/http"
	"restaurant-ordering/notify-svc/internal/service"
	"restaurant-ordering/notify-svc/internal/storage"
)

type Config struct {
	config.Base
	Addr           string `env:"NOTIFY_SVC_ADDR,default=:8084"`
	ConsumerGroup  string `env:"NOTIFY_CONSUMER_GROUP,default=notify-svc"`
	RestaurantName string `env:"RESTAURANT_NAME,default=Our Restaurant"`
	MailProvider   string `env:"MAIL_PROVIDER,default=smtp"`
	MailFrom       string `env:"MAIL_FROM,default=no-reply@localhost"`
	MailAPIURL     string `env:"MAIL_API_URL,default=https://api.resend.com"`
	MailAPIKey     string `env:"MAIL_API_KEY"`
	SMTPHost       string `env:"SMTP_HOST,default=localhost"`
	SMTPPort       int    `env:"SMTP_PORT,default=587"`
	SMTPUser       string `env:"SMTP_USER"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
}

func newMailer(cfg Config) service.Mailer {
	if cfg.MailProvider == "api" {
		return storage.NewAPIMailer(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	}
	return storage.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "notify-svc")

	db := config.MustInitPostgres(cfg.Postgres, log)
	defer db.Close()
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	templates, err := service.NewTemplates(cfg.RestaurantName)
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}
	notifier := service.NewNotifier(newMailer(cfg), templates, storage.NewPostgresRepository(db), cfg.RestaurantName, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := config.NewKafkaReader(cfg.Kafka, cfg.ConsumerGroup)
	defer reader.Close()
	go service.NewConsumer(reader, notifier, log).Start(ctx)

	handler := &httpapi.Handler{
		Notifier: notifier,
		Auth:     auth.NewTokenService(cfg.Auth),
		Log:      log,
	}

	httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler), log)
}
