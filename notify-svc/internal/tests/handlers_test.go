package tests

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	httpapi "restaurant-ordering/notify-svc/internal/api/http"
	"restaurant-ordering/notify-svc/internal/domain"
	"restaurant-ordering/notify-svc/internal/mocks"
	"restaurant-ordering/notify-svc/internal/service"
	"restaurant-ordering/validation"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tokens = auth.NewTokenService(config.Auth{JWTSecret: "test", TokenTTL: time.Hour})

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := tokens.Issue("user-1", "user@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func setupTestRouter(t *testing.T) (*mux.Router, *mocks.NotifierInterface) {
	notifier := mocks.NewNotifierInterface(t)
	handler := &httpapi.Handler{Notifier: notifier, Auth: tokens, Log: nullLog()}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, notifier
}

func TestHandler_sendTestEmail(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		payload      string
		prepareMocks func(*mocks.NotifierInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name:       "success",
			authHeader: bearer(t, auth.RoleAdmin),
			payload:    `{"to":"admin@example.com","message":"hello"}`,
			prepareMocks: func(m *mocks.NotifierInterface) {
				m.On("SendTestEmail", mock.Anything, domain.TestEmail{To: "admin@example.com", Message: "hello"}).
					Return("msg-1", nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"id":"msg-1"`,
		},
		{
			name:         "anonymous_rejected",
			payload:      `{}`,
			prepareMocks: func(*mocks.NotifierInterface) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "customer_forbidden",
			authHeader:   bearer(t, auth.RoleCustomer),
			payload:      `{}`,
			prepareMocks: func(*mocks.NotifierInterface) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:       "validation_error",
			authHeader: bearer(t, auth.RoleAdmin),
			payload:    `{"to":"bad"}`,
			prepareMocks: func(m *mocks.NotifierInterface) {
				m.On("SendTestEmail", mock.Anything, mock.Anything).Return("", validation.Errors{"to": "must be a valid email"}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:       "provider_error",
			authHeader: bearer(t, auth.RoleAdmin),
			payload:    `{"to":"admin@example.com"}`,
			prepareMocks: func(m *mocks.NotifierInterface) {
				m.On("SendTestEmail", mock.Anything, mock.Anything).Return("", errors.New("smtp down")).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "invalid_json",
			authHeader:   bearer(t, auth.RoleAdmin),
			payload:      `{bad`,
			prepareMocks: func(*mocks.NotifierInterface) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/functions/send-test-email", bytes.NewBufferString(testCase.payload))
			if testCase.authHeader != "" {
				req.Header.Set("Authorization", testCase.authHeader)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_sendOrderConfirmation(t *testing.T) {
	router, m := setupTestRouter(t)
	m.On("SendOrderConfirmation", mock.Anything, mock.MatchedBy(func(msg domain.OrderConfirmation) bool {
		return msg.OrderID == 3 && len(msg.Items) == 1
	})).Return("msg-9", nil).Once()

	req := httptest.NewRequest("POST", "/functions/send-order-confirmation",
		bytes.NewBufferString(`{"order_id":3,"customer_name":"Ana","customer_email":"ana@example.com","items":[{"name":"Pizza","quantity":1,"price":9,"subtotal":9}]}`))
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_subscribe(t *testing.T) {
	tests := []struct {
		name         string
		result       error
		expectedCode int
	}{
		{name: "created", expectedCode: http.StatusCreated},
		{name: "duplicate", result: service.ErrAlreadySubscribed, expectedCode: http.StatusConflict},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			m.On("Subscribe", mock.Anything, domain.NewsletterWelcome{Email: "ana@example.com"}).
				Return("msg-1", testCase.result).Once()

			req := httptest.NewRequest("POST", "/api/newsletter", bytes.NewBufferString(`{"email":"ana@example.com"}`))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}
