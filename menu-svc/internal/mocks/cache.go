package mocks

import (
	"context"
	"io"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MenuCache) GetMenu(ctx context.Context, key string) ([]domain.MenuItem, bool) {
	ret := _m.Called(ctx, key)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Bool(1)
}

func (_m *MenuCache) SetMenu(ctx context.Context, key string, items []domain.MenuItem) error {
	ret := _m.Called(ctx, key, items)
	return ret.Error(0)
}

func (_m *MenuCache) Invalidate(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

type ImageStore struct {
	mock.Mock
}

func NewImageStore(t testingT) *ImageStore {
	m := &ImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ImageStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	ret := _m.Called(ctx, name, contentType, body)
	return ret.String(0), ret.Error(1)
}
