package service

import (
	"context"
	"time"

	"restaurant-ordering/analytics-svc/internal/domain"
)

type StatsRepository interface {
	StatusCounts(ctx context.Context) (map[string]int, error)
	Revenue(ctx context.Context, dayStart time.Time) (domain.Revenue, error)
	MenuCounts(ctx context.Context) (domain.MenuCounts, error)
	TopItems(ctx context.Context, limit int) ([]domain.TopItem, error)
}

type DashboardCache interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, bool)
	SetDashboard(ctx context.Context, d *domain.Dashboard) error
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
