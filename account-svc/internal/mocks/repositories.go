package mocks

import (
	"context"

	"restaurant-ordering/account-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func userResult(ret mock.Arguments) (*domain.User, error) {
	var r0 *domain.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User, role string) error {
	ret := _m.Called(ctx, user, role)
	return ret.Error(0)
}

func (_m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(_m.Called(ctx, email))
}

func (_m *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return userResult(_m.Called(ctx, id))
}

func (_m *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	ret := _m.Called(ctx)
	var r0 []domain.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) EnsureAdmin(ctx context.Context, email, fullName string) (*domain.User, error) {
	return userResult(_m.Called(ctx, email, fullName))
}

func (_m *UserRepository) SetPassword(ctx context.Context, userID, hash string) error {
	ret := _m.Called(ctx, userID, hash)
	return ret.Error(0)
}

type ProfileRepository struct {
	mock.Mock
}

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	ret := _m.Called(ctx, userID, update)
	var r0 *domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Profile)
	}
	return r0, ret.Error(1)
}

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
