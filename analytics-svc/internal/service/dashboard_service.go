package service

import (
	"context"
	"time"

	"restaurant-ordering/analytics-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const topItemsLimit = 5

type DashboardService struct {
	repo  StatsRepository
	cache DashboardCache
	log   *logrus.Entry
	now   func() time.Time
}

func NewDashboardService(repo StatsRepository, cache DashboardCache, log *logrus.Entry) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, log: log, now: time.Now}
}

// WithClock replaces the clock used for the "today" boundary.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	if d, ok := s.cache.GetDashboard(ctx); ok {
		return d, nil
	}

	d, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetDashboard(ctx, d); err != nil {
		s.log.WithError(err).Warn("Failed to cache dashboard")
	}
	return d, nil
}

func (s *DashboardService) build(ctx context.Context) (*domain.Dashboard, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	rev, err := s.repo.Revenue(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	menu, err := s.repo.MenuCounts(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopItems(ctx, topItemsLimit)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		OrdersByStatus: make(map[string]int, len(domain.Statuses)),
		Revenue:        rev.Total,
		TodayOrders:    rev.TodayOrders,
		TodayRevenue:   rev.TodayRevenue,
		MenuItems:      menu.Items,
		OutOfStock:     menu.OutOfStock,
		TopItems:       top,
		GeneratedAt:    now,
	}
	for _, status := range domain.Statuses {
		d.OrdersByStatus[status] = 0
	}
	for status, n := range counts {
		d.OrdersByStatus[status] = n
		d.TotalOrders += n
		if status != domain.StatusDelivered && status != domain.StatusCancelled {
			d.OpenOrders += n
		}
	}
	return d, nil
}
