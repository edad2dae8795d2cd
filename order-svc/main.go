package main

import (
	"time"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	"restaurant-ordering/migrations"
	httpapi "restaurant-ordering/order-svc/internal/api/http"
	"restaurant-ordering/order-svc/internal/service"
	"restaurant-ordering/order-svc/internal/storage"
)

type Config struct {
	config.Base
	Addr         string        `env:"ORDER_SVC_ADDR,default=:8082"`
	GuestCartTTL time.Duration `env:"GUEST_CART_TTL,default=168h"`
	SiteURL      string        `env:"SITE_URL,default=http://localhost:5173"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "order-svc")

	db := config.MustInitPostgres(cfg.Postgres, log)
	defer db.Close()
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb := config.MustInitRedis(cfg.Redis, log)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	carts := service.NewCartService(
		storage.NewGuestCartStore(rdb, cfg.GuestCartTTL),
		storage.NewUserCartStore(db),
		repo,
	)

	tokens := auth.NewTokenService(cfg.Auth)
	handler := &httpapi.Handler{
		Carts:    carts,
		Checkout: service.NewCheckoutService(carts, repo, repo, storage.NewKafkaPublisher(writer), log),
		Orders:   service.NewOrderService(repo, service.DefaultQRGenerator{BaseURL: cfg.SiteURL}, log),
		Auth:     tokens,
		Receipts: tokens,
		Log:      log,
	}

	httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler), log)
}
