package mocks

import (
	"context"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MenuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuRepository) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MenuRepository) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	ret := _m.Called(ctx, id, imageURL)
	return ret.Error(0)
}

func (_m *MenuRepository) ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CategoryRepository) CreateCategory(ctx context.Context, cat *domain.Category) error {
	ret := _m.Called(ctx, cat)
	return ret.Error(0)
}

func (_m *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) UpdateCategory(ctx context.Context, cat *domain.Category) error {
	ret := _m.Called(ctx, cat)
	return ret.Error(0)
}

func (_m *CategoryRepository) DeleteCategory(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *CategoryRepository) CountItemsInCategory(ctx context.Context, id int) (int, error) {
	ret := _m.Called(ctx, id)
	return ret.Int(0), ret.Error(1)
}

func (_m *CategoryRepository) ReorderCategories(ctx context.Context, ids []int) error {
	ret := _m.Called(ctx, ids)
	return ret.Error(0)
}

type GalleryRepository struct {
	mock.Mock
}

func NewGalleryRepository(t testingT) *GalleryRepository {
	m := &GalleryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *GalleryRepository) CreateImage(ctx context.Context, img *domain.GalleryImage) error {
	ret := _m.Called(ctx, img)
	return ret.Error(0)
}

func (_m *GalleryRepository) ListImages(ctx context.Context, featuredOnly bool) ([]domain.GalleryImage, error) {
	ret := _m.Called(ctx, featuredOnly)
	var r0 []domain.GalleryImage
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.GalleryImage)
	}
	return r0, ret.Error(1)
}

func (_m *GalleryRepository) UpdateImage(ctx context.Context, img *domain.GalleryImage) error {
	ret := _m.Called(ctx, img)
	return ret.Error(0)
}

func (_m *GalleryRepository) DeleteImage(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *GalleryRepository) ToggleImageFeatured(ctx context.Context, id int) (*domain.GalleryImage, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.GalleryImage
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.GalleryImage)
	}
	return r0, ret.Error(1)
}

type SettingsRepository struct {
	mock.Mock
}

func NewSettingsRepository(t testingT) *SettingsRepository {
	m := &SettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	ret := _m.Called(ctx)
	var r0 *domain.Settings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Settings)
	}
	return r0, ret.Error(1)
}

func (_m *SettingsRepository) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error) {
	ret := _m.Called(ctx, update)
	var r0 *domain.Settings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Settings)
	}
	return r0, ret.Error(1)
}
