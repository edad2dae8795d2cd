package mocks

import (
	"context"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Mailer struct {
	mock.Mock
}

func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *Mailer) Send(ctx context.Context, email domain.Email) (string, error) {
	ret := _m.Called(ctx, email)
	return ret.String(0), ret.Error(1)
}

type SubscriberRepository struct {
	mock.Mock
}

func NewSubscriberRepository(t testingT) *SubscriberRepository {
	m := &SubscriberRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SubscriberRepository) AddSubscriber(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}
