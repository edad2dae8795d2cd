package mocks

import (
	"context"

	"restaurant-ordering/account-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type AccountServiceInterface struct {
	mock.Mock
}

func NewAccountServiceInterface(t testingT) *AccountServiceInterface {
	m := &AccountServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func sessionResult(ret mock.Arguments) (*domain.Session, error) {
	var r0 *domain.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Session)
	}
	return r0, ret.Error(1)
}

func (_m *AccountServiceInterface) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Session, error) {
	return sessionResult(_m.Called(ctx, req))
}

func (_m *AccountServiceInterface) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	return sessionResult(_m.Called(ctx, req))
}

func (_m *AccountServiceInterface) AdminLogin(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	return sessionResult(_m.Called(ctx, req))
}

func (_m *AccountServiceInterface) Role(ctx context.Context, userID string) (string, error) {
	ret := _m.Called(ctx, userID)
	return ret.String(0), ret.Error(1)
}

func (_m *AccountServiceInterface) ListUsers(ctx context.Context) ([]domain.User, error) {
	ret := _m.Called(ctx)
	var r0 []domain.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *AccountServiceInterface) InviteAdmin(ctx context.Context, req domain.InviteRequest) (*domain.Invitation, error) {
	ret := _m.Called(ctx, req)
	var r0 *domain.Invitation
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Invitation)
	}
	return r0, ret.Error(1)
}

func (_m *AccountServiceInterface) VerifyAdmin(ctx context.Context, req domain.VerifyRequest) (*domain.Session, error) {
	return sessionResult(_m.Called(ctx, req))
}

type ProfileServiceInterface struct {
	mock.Mock
}

func NewProfileServiceInterface(t testingT) *ProfileServiceInterface {
	m := &ProfileServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ProfileServiceInterface) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileServiceInterface) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	ret := _m.Called(ctx, userID, update)
	var r0 *domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Profile)
	}
	return r0, ret.Error(1)
}
