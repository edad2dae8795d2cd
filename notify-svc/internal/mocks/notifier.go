package mocks

import (
	"context"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type NotifierInterface struct {
	mock.Mock
}

func NewNotifierInterface(t testingT) *NotifierInterface {
	m := &NotifierInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *NotifierInterface) SendOrderConfirmation(ctx context.Context, msg domain.OrderConfirmation) (string, error) {
	ret := _m.Called(ctx, msg)
	return ret.String(0), ret.Error(1)
}

func (_m *NotifierInterface) SendAdminVerification(ctx context.Context, msg domain.AdminVerification) (string, error) {
	ret := _m.Called(ctx, msg)
	return ret.String(0), ret.Error(1)
}

func (_m *NotifierInterface) SendNewsletterWelcome(ctx context.Context, msg domain.NewsletterWelcome) (string, error) {
	ret := _m.Called(ctx, msg)
	return ret.String(0), ret.Error(1)
}

func (_m *NotifierInterface) SendTestEmail(ctx context.Context, msg domain.TestEmail) (string, error) {
	ret := _m.Called(ctx, msg)
	return ret.String(0), ret.Error(1)
}

func (_m *NotifierInterface) Subscribe(ctx context.Context, msg domain.NewsletterWelcome) (string, error) {
	ret := _m.Called(ctx, msg)
	return ret.String(0), ret.Error(1)
}

func (_m *NotifierInterface) Dispatch(ctx context.Context, n domain.Notification) (string, error) {
	ret := _m.Called(ctx, n)
	return ret.String(0), ret.Error(1)
}
