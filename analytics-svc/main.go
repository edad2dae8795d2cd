package main

import (
	"time"

	httpapi "restaurant-ordering/analytics-svc/internal/api/http"
	"restaurant-ordering/analytics-svc/internal/service"
	"restaurant-ordering/analytics-svc/internal/storage"
	"restaurant-ordering/auth"
	"restaurant-ordering/config"
)

type Config struct {
	config.Base
	Addr     string        `env:"ANALYTICS_SVC_ADDR,default=:8085"`
	CacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL,default=60s"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "analytics-svc")

	db := config.MustInitPostgres(cfg.Postgres, log)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.Redis, log)
	defer rdb.Close()

	handler := &httpapi.Handler{
		Dashboard: service.NewDashboardService(
			storage.NewPostgresRepository(db),
			storage.NewRedisCache(rdb, cfg.CacheTTL),
			log,
		),
		Auth: auth.NewTokenService(cfg.Auth),
		Log:  log,
	}

	httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler), log)
}
