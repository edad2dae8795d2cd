package mocks

import (
	"context"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CartStore struct {
	mock.Mock
}

func NewCartStore(t testingT) *CartStore {
	m := &CartStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CartStore) Load(ctx context.Context, key string) ([]domain.CartItem, error) {
	ret := _m.Called(ctx, key)
	var r0 []domain.CartItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.CartItem)
	}
	return r0, ret.Error(1)
}

func (_m *CartStore) Save(ctx context.Context, key string, items []domain.CartItem) error {
	ret := _m.Called(ctx, key, items)
	return ret.Error(0)
}

func (_m *CartStore) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

type MenuReader struct {
	mock.Mock
}

func NewMenuReader(t testingT) *MenuReader {
	m := &MenuReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MenuReader) MenuSnapshots(ctx context.Context, ids []int) (map[int]domain.MenuSnapshot, error) {
	ret := _m.Called(ctx, ids)
	var r0 map[int]domain.MenuSnapshot
	if v := ret.Get(0); v != nil {
		r0 = v.(map[int]domain.MenuSnapshot)
	}
	return r0, ret.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *OrderRepository) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	ret := _m.Called(ctx, id, status)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	ret := _m.Called(ctx, id, status)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) DeleteOrder(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *OrderRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	ret := _m.Called(ctx, orderID, qr)
	return ret.Error(0)
}

func (_m *OrderRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}
