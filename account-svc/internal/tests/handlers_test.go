package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "restaurant-ordering/account-svc/internal/api/http"
	"restaurant-ordering/account-svc/internal/domain"
	"restaurant-ordering/account-svc/internal/mocks"
	"restaurant-ordering/account-svc/internal/service"
	"restaurant-ordering/auth"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := tokens.Issue(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

type handlerMocks struct {
	accounts *mocks.AccountServiceInterface
	profiles *mocks.ProfileServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		accounts: mocks.NewAccountServiceInterface(t),
		profiles: mocks.NewProfileServiceInterface(t),
	}
	handler := &httpapi.Handler{Accounts: m.accounts, Profiles: m.profiles, Auth: tokens, Log: nullLog()}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func TestHandler_authEndpoints(t *testing.T) {
	session := &domain.Session{Token: "jwt", User: domain.SessionUser{ID: "user-1", Role: "customer"}}

	tests := []struct {
		name         string
		url          string
		payload      string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name:    "signup_created",
			url:     "/api/auth/signup",
			payload: `{"email":"ada@example.com","password":"analytical","subscribe":true}`,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("Signup", mock.Anything, domain.SignupRequest{Email: "ada@example.com", Password: "analytical", Subscribe: true}).
					Return(session, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:    "signup_duplicate",
			url:     "/api/auth/signup",
			payload: `{"email":"ada@example.com","password":"analytical"}`,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("Signup", mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "login_bad_credentials",
			url:     "/api/auth/login",
			payload: `{"email":"ada@example.com","password":"nope"}`,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials).Once()
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:    "admin_login_not_admin",
			url:     "/api/auth/admin/login",
			payload: `{"email":"ada@example.com","password":"analytical"}`,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("AdminLogin", mock.Anything, mock.Anything).Return(nil, service.ErrNotAdmin).Once()
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:    "verify_expired_invite",
			url:     "/api/auth/admin/verify",
			payload: `{"token":"expired","password":"kitchen-secret"}`,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("VerifyAdmin", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidToken).Once()
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid_json",
			url:          "/api/auth/login",
			payload:      `{`,
			prepareMocks: func(handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", testCase.url, bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_role(t *testing.T) {
	router, m := setupTestRouter(t)
	m.accounts.On("Role", mock.Anything, "user-1").Return("admin", nil).Once()

	req := httptest.NewRequest("GET", "/api/auth/role", nil)
	req.Header.Set("Authorization", bearer(t, "user-1", auth.RoleCustomer))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"admin","is_admin":true}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/auth/role", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_updateProfile(t *testing.T) {
	router, m := setupTestRouter(t)
	m.profiles.On("Update", mock.Anything, "user-1", domain.ProfileUpdate{FullName: "Ada", Address: "12 Engine Road"}).
		Return(&domain.Profile{UserID: "user-1", FullName: "Ada", Address: "12 Engine Road"}, nil).Once()

	req := httptest.NewRequest("PUT", "/api/profile", bytes.NewBufferString(`{"full_name":"Ada","address":"12 Engine Road"}`))
	req.Header.Set("Authorization", bearer(t, "user-1", auth.RoleCustomer))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"full_name":"Ada"`)
}

func TestHandler_inviteAdmin(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name: "admin",
			role: auth.RoleAdmin,
			prepareMocks: func(m handlerMocks) {
				m.accounts.On("InviteAdmin", mock.Anything, domain.InviteRequest{Email: "chef@example.com"}).
					Return(&domain.Invitation{UserID: "user-9", Email: "chef@example.com", EmailSent: true}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "customer",
			role:         auth.RoleCustomer,
			prepareMocks: func(handlerMocks) {},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/admin/users/invite", bytes.NewBufferString(`{"email":"chef@example.com"}`))
			req.Header.Set("Authorization", bearer(t, "someone", testCase.role))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_listUsers(t *testing.T) {
	router, m := setupTestRouter(t)
	m.accounts.On("ListUsers", mock.Anything).
		Return([]domain.User{{ID: "user-1", Email: "ada@example.com", Roles: []string{"customer"}}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", bearer(t, "admin-1", auth.RoleAdmin))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password")
}
