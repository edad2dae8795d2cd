package main

import (
	"context"
	"time"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	httpapi "restaurant-ordering/menu-svc/internal/api/http"
	"restaurant-ordering/menu-svc/internal/service"
	"restaurant-ordering/menu-svc/internal/storage"
	"restaurant-ordering/migrations"
)

type Config struct {
	config.Base
	Addr      string        `env:"MENU_SVC_ADDR,default=:8081"`
	CacheTTL  time.Duration `env:"MENU_CACHE_TTL,default=5m"`
	UploadDir string        `env:"UPLOAD_DIR,default=./uploads"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"AWS_REGION,default=us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)
	log := config.NewLogger(cfg.Log, "menu-svc")

	db := config.MustInitPostgres(cfg.Postgres, log)
	defer db.Close()
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb := config.MustInitRedis(cfg.Redis, log)
	defer rdb.Close()

	var (
		images    service.ImageStore
		uploadDir string
	)
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3ImageStore(context.Background(), storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatalf("Failed to init S3 image store: %v", err)
		}
		images = s3Store
		log.WithField("bucket", cfg.S3Bucket).Info("Storing images in S3")
	} else {
		images = storage.NewLocalImageStore(cfg.UploadDir, "/uploads")
		uploadDir = cfg.UploadDir
		log.WithField("dir", cfg.UploadDir).Info("Storing images on local disk")
	}

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewRedisCache(rdb, cfg.CacheTTL)

	handler := &httpapi.Handler{
		Menu:       service.NewMenuService(repo, repo, cache, images, log),
		Categories: service.NewCategoryService(repo, cache, log),
		Gallery:    service.NewGalleryService(repo, images),
		Team:       service.NewTeamService(repo),
		Settings:   service.NewSettingsService(repo),
		Auth:       auth.NewTokenService(cfg.Auth),
		Log:        log,
	}

	httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler, uploadDir), log)
}
