package mocks

import (
	"context"
	"io"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MenuServiceInterface) Create(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuServiceInterface) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuServiceInterface) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuServiceInterface) Update(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuServiceInterface) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MenuServiceInterface) UploadImage(ctx context.Context, id int, filename, contentType string, body io.Reader) (string, error) {
	ret := _m.Called(ctx, id, filename, contentType, body)
	return ret.String(0), ret.Error(1)
}

func (_m *MenuServiceInterface) ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuServiceInterface) ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

type CategoryServiceInterface struct {
	mock.Mock
}

func NewCategoryServiceInterface(t testingT) *CategoryServiceInterface {
	m := &CategoryServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CategoryServiceInterface) Create(ctx context.Context, cat *domain.Category) error {
	ret := _m.Called(ctx, cat)
	return ret.Error(0)
}

func (_m *CategoryServiceInterface) List(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryServiceInterface) Update(ctx context.Context, cat *domain.Category) error {
	ret := _m.Called(ctx, cat)
	return ret.Error(0)
}

func (_m *CategoryServiceInterface) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *CategoryServiceInterface) Reorder(ctx context.Context, ids []int) error {
	ret := _m.Called(ctx, ids)
	return ret.Error(0)
}

type SettingsServiceInterface struct {
	mock.Mock
}

func NewSettingsServiceInterface(t testingT) *SettingsServiceInterface {
	m := &SettingsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SettingsServiceInterface) Get(ctx context.Context) (*domain.Settings, error) {
	ret := _m.Called(ctx)
	var r0 *domain.Settings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Settings)
	}
	return r0, ret.Error(1)
}

func (_m *SettingsServiceInterface) Update(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error) {
	ret := _m.Called(ctx, update)
	var r0 *domain.Settings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Settings)
	}
	return r0, ret.Error(1)
}
