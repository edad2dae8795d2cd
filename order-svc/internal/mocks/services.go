package mocks

import (
	"context"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartServiceInterface struct {
	mock.Mock
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func cartResult(ret mock.Arguments) (domain.Cart, error) {
	var r0 domain.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(domain.Cart)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) Get(ctx context.Context, owner domain.CartOwner) (domain.Cart, error) {
	return cartResult(_m.Called(ctx, owner))
}

func (_m *CartServiceInterface) Add(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error) {
	return cartResult(_m.Called(ctx, owner, menuItemID, quantity))
}

func (_m *CartServiceInterface) Remove(ctx context.Context, owner domain.CartOwner, menuItemID int) (domain.Cart, error) {
	return cartResult(_m.Called(ctx, owner, menuItemID))
}

func (_m *CartServiceInterface) UpdateQuantity(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error) {
	return cartResult(_m.Called(ctx, owner, menuItemID, quantity))
}

func (_m *CartServiceInterface) Clear(ctx context.Context, owner domain.CartOwner) error {
	ret := _m.Called(ctx, owner)
	return ret.Error(0)
}

func (_m *CartServiceInterface) Merge(ctx context.Context, sessionID, userID string) (domain.Cart, error) {
	return cartResult(_m.Called(ctx, sessionID, userID))
}

type CheckoutServiceInterface struct {
	mock.Mock
}

func NewCheckoutServiceInterface(t testingT) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CheckoutServiceInterface) PlaceOrder(ctx context.Context, owner domain.CartOwner, req domain.CheckoutRequest) (*domain.Order, error) {
	ret := _m.Called(ctx, owner, req)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func orderResult(ret mock.Arguments) (*domain.Order, error) {
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(ctx context.Context, id int) (*domain.Order, error) {
	return orderResult(_m.Called(ctx, id))
}

func (_m *OrderServiceInterface) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) List(ctx context.Context, filter domain.OrderFilter) (*domain.OrderPage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *domain.OrderPage
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.OrderPage)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	return orderResult(_m.Called(ctx, id, status))
}

func (_m *OrderServiceInterface) UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	return orderResult(_m.Called(ctx, id, status))
}

func (_m *OrderServiceInterface) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *OrderServiceInterface) QRCode(ctx context.Context, id int) ([]byte, error) {
	ret := _m.Called(ctx, id)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) QRLink(orderID int) string {
	ret := _m.Called(orderID)
	return ret.String(0)
}
