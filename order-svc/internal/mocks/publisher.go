package mocks

import (
	"context"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type NotificationPublisher struct {
	mock.Mock
}

func NewNotificationPublisher(t testingT) *NotificationPublisher {
	m := &NotificationPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *NotificationPublisher) Publish(ctx context.Context, msg domain.Notification) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Generate(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *QRGenerator) Link(orderID int) string {
	ret := _m.Called(orderID)
	return ret.String(0)
}
