package main

import (
	"net/http"
	"time"

	"restaurant-ordering/api-gateway/internal/gateway"
	"restaurant-ordering/config"

	"github.com/rs/cors"
)

type Config struct {
	Gateway         gateway.Config
	Log             config.Log
	Addr            string        `env:"GATEWAY_ADDR,default=:8080"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173;http://127.0.0.1:5173"`
	RateLimit       float64       `env:"RATE_LIMIT_RPS,default=20"`
	RateBurst       int           `env:"RATE_LIMIT_BURST,default=40"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=30s"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "api-gateway")

	gw := gateway.NewGateway(cfg.Gateway, &http.Client{Timeout: cfg.UpstreamTimeout}, log)

	limiter := gateway.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, log)
	stop := make(chan struct{})
	defer close(stop)
	limiter.StartCleanup(time.Minute, 10*time.Minute, stop)

	r := gw.SetupRoutes(gateway.NewMetrics(), limiter)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Session-ID"},
		AllowCredentials: true,
	})

	log.Infof("API Gateway starting on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, c.Handler(r)))
}
