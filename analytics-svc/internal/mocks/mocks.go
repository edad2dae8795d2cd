package mocks

import (
	"context"
	"time"

	"restaurant-ordering/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type StatsRepository struct {
	mock.Mock
}

func NewStatsRepository(t testingT) *StatsRepository {
	m := &StatsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *StatsRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	ret := _m.Called(ctx)
	var r0 map[string]int
	if v := ret.Get(0); v != nil {
		r0 = v.(map[string]int)
	}
	return r0, ret.Error(1)
}

func (_m *StatsRepository) Revenue(ctx context.Context, dayStart time.Time) (domain.Revenue, error) {
	ret := _m.Called(ctx, dayStart)
	return ret.Get(0).(domain.Revenue), ret.Error(1)
}

func (_m *StatsRepository) MenuCounts(ctx context.Context) (domain.MenuCounts, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.MenuCounts), ret.Error(1)
}

func (_m *StatsRepository) TopItems(ctx context.Context, limit int) ([]domain.TopItem, error) {
	ret := _m.Called(ctx, limit)
	var r0 []domain.TopItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.TopItem)
	}
	return r0, ret.Error(1)
}

type DashboardCache struct {
	mock.Mock
}

func NewDashboardCache(t testingT) *DashboardCache {
	m := &DashboardCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *DashboardCache) GetDashboard(ctx context.Context) (*domain.Dashboard, bool) {
	ret := _m.Called(ctx)
	var r0 *domain.Dashboard
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dashboard)
	}
	return r0, ret.Bool(1)
}

func (_m *DashboardCache) SetDashboard(ctx context.Context, d *domain.Dashboard) error {
	ret := _m.Called(ctx, d)
	return ret.Error(0)
}

type DashboardServiceInterface struct {
	mock.Mock
}

func NewDashboardServiceInterface(t testingT) *DashboardServiceInterface {
	m := &DashboardServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *DashboardServiceInterface) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	ret := _m.Called(ctx)
	var r0 *domain.Dashboard
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dashboard)
	}
	return r0, ret.Error(1)
}
