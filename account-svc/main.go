package main

import (
	httpapi "restaurant-ordering/account-svc/internal/api/http"
	"restaurant-ordering/account-svc/internal/service"
	"restaurant-ordering/account-svc/internal/storage"
	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	"restaurant-ordering/migrations"
)

type Config struct {
	config.Base
	Addr    string `env:"ACCOUNT_SVC_ADDR,default=:8083"`
	SiteURL string `env:"SITE_URL,default=http://localhost:5173"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "account-svc")

	db := config.MustInitPostgres(cfg.Postgres, log)
	defer db.Close()
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	tokens := auth.NewTokenService(cfg.Auth)

	handler := &httpapi.Handler{
		Accounts: service.NewAccountService(repo, tokens, storage.NewKafkaPublisher(writer), cfg.SiteURL, log),
		Profiles: service.NewProfileService(repo),
		Auth:     tokens,
		Log:      log,
	}

	httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler), log)
}
