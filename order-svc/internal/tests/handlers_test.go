package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	httpapi "restaurant-ordering/order-svc/internal/api/http"
	"restaurant-ordering/order-svc/internal/domain"
	"restaurant-ordering/order-svc/internal/mocks"
	"restaurant-ordering/order-svc/internal/service"
	"restaurant-ordering/validation"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tokens = auth.NewTokenService(config.Auth{JWTSecret: "test", TokenTTL: time.Hour})

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := tokens.Issue(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

type handlerMocks struct {
	carts    *mocks.CartServiceInterface
	checkout *mocks.CheckoutServiceInterface
	orders   *mocks.OrderServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		carts:    mocks.NewCartServiceInterface(t),
		checkout: mocks.NewCheckoutServiceInterface(t),
		orders:   mocks.NewOrderServiceInterface(t),
	}
	handler := &httpapi.Handler{
		Carts:    m.carts,
		Checkout: m.checkout,
		Orders:   m.orders,
		Auth:     tokens,
		Receipts: tokens,
		Log:      nullLog(),
	}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_getCart_IssuesGuestSession(t *testing.T) {
	router, m := setupTestRouter(t)
	m.carts.On("Get", mock.Anything, mock.MatchedBy(func(o domain.CartOwner) bool {
		return o.IsGuest() && o.SessionID != ""
	})).Return(domain.NewCart(nil), nil).Once()

	recorder := serve(router, httptest.NewRequest("GET", "/api/cart", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(httpapi.SessionHeader))
	assert.JSONEq(t, `{"items":[],"totals":{"subtotal":0,"delivery_fee":0,"tax":0,"total":0}}`, recorder.Body.String())
}

func TestHandler_getCart_Owner(t *testing.T) {
	tests := []struct {
		name     string
		auth     string
		session  string
		expected domain.CartOwner
	}{
		{name: "guest_session", session: "sess-1", expected: domain.CartOwner{SessionID: "sess-1"}},
		{name: "signed_in", auth: "user-1", session: "sess-1", expected: domain.CartOwner{UserID: "user-1", SessionID: "sess-1"}},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			m.carts.On("Get", mock.Anything, testCase.expected).Return(domain.NewCart(nil), nil).Once()

			req := httptest.NewRequest("GET", "/api/cart/totals", nil)
			req.Header.Set(httpapi.SessionHeader, testCase.session)
			if testCase.auth != "" {
				req.Header.Set("Authorization", bearer(t, testCase.auth, auth.RoleCustomer))
			}
			recorder := serve(router, req)
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"total":0`)
		})
	}
}

func TestHandler_addCartItem(t *testing.T) {
	owner := domain.CartOwner{SessionID: "sess-1"}

	tests := []struct {
		name         string
		payload      string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"menu_item_id":1,"quantity":2}`,
			prepareMocks: func(m handlerMocks) {
				m.carts.On("Add", mock.Anything, owner, 1, 2).
					Return(domain.NewCart([]domain.CartItem{{ID: 1, Price: 10, Quantity: 2}}), nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "out_of_stock",
			payload: `{"menu_item_id":1,"quantity":1}`,
			prepareMocks: func(m handlerMocks) {
				m.carts.On("Add", mock.Anything, owner, 1, 1).Return(nil, service.ErrOutOfStock).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "unknown_item",
			payload: `{"menu_item_id":99,"quantity":1}`,
			prepareMocks: func(m handlerMocks) {
				m.carts.On("Add", mock.Anything, owner, 99, 1).Return(nil, service.ErrUnknownItem).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "invalid_json",
			payload:      `{`,
			prepareMocks: func(handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewBufferString(testCase.payload))
			req.Header.Set(httpapi.SessionHeader, "sess-1")
			recorder := serve(router, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_updateCartItem_ZeroRemoves(t *testing.T) {
	router, m := setupTestRouter(t)
	m.carts.On("UpdateQuantity", mock.Anything, domain.CartOwner{SessionID: "sess-1"}, 4, 0).
		Return(domain.NewCart(nil), nil).Once()

	req := httptest.NewRequest("PUT", "/api/cart/items/4", bytes.NewBufferString(`{"quantity":0}`))
	req.Header.Set(httpapi.SessionHeader, "sess-1")
	recorder := serve(router, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_mergeCart(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		router, _ := setupTestRouter(t)
		req := httptest.NewRequest("POST", "/api/cart/merge", nil)
		req.Header.Set(httpapi.SessionHeader, "sess-1")
		assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)
	})

	t.Run("merges_session_into_user", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.carts.On("Merge", mock.Anything, "sess-1", "user-1").
			Return(domain.NewCart([]domain.CartItem{{ID: 1, Price: 10, Quantity: 3}}), nil).Once()

		req := httptest.NewRequest("POST", "/api/cart/merge", nil)
		req.Header.Set(httpapi.SessionHeader, "sess-1")
		req.Header.Set("Authorization", bearer(t, "user-1", auth.RoleCustomer))
		recorder := serve(router, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"total":30`)
	})
}

func TestHandler_checkout(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "created",
			payload: `{"customer_name":"Ada","payment_method":"cash"}`,
			prepareMocks: func(m handlerMocks) {
				m.checkout.On("PlaceOrder", mock.Anything, domain.CartOwner{SessionID: "sess-1"}, mock.MatchedBy(func(req domain.CheckoutRequest) bool {
					return req.CustomerName == "Ada" && req.PaymentMethod == "cash"
				})).Return(&domain.Order{ID: 12, Total: 20}, nil).Once()
				m.orders.On("QRLink", 12).Return("https://trattoria.example/account?order=12").Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"qr_code_url":"/api/orders/12/qrcode?token=`,
		},
		{
			name:    "validation_failed",
			payload: `{"payment_method":"card"}`,
			prepareMocks: func(m handlerMocks) {
				m.checkout.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, validation.Errors{"card_number": "use the demo card 4242 4242 4242 4242"}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `"card_number"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(testCase.payload))
			req.Header.Set(httpapi.SessionHeader, "sess-1")
			recorder := serve(router, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
		})
	}
}

func TestHandler_getOrder_Visibility(t *testing.T) {
	owner := "user-1"

	tests := []struct {
		name         string
		userID       string
		role         string
		expectedCode int
	}{
		{name: "owner", userID: "user-1", role: auth.RoleCustomer, expectedCode: http.StatusOK},
		{name: "other_customer", userID: "user-2", role: auth.RoleCustomer, expectedCode: http.StatusNotFound},
		{name: "admin", userID: "admin-1", role: auth.RoleAdmin, expectedCode: http.StatusOK},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			m.orders.On("Get", mock.Anything, 5).Return(&domain.Order{ID: 5, UserID: &owner}, nil).Once()

			req := httptest.NewRequest("GET", "/api/orders/5", nil)
			req.Header.Set("Authorization", bearer(t, testCase.userID, testCase.role))
			assert.Equal(t, testCase.expectedCode, serve(router, req).Code)
		})
	}
}

func TestHandler_myOrders(t *testing.T) {
	router, m := setupTestRouter(t)
	m.orders.On("ListForUser", mock.Anything, "user-1").Return([]domain.Order{{ID: 1}, {ID: 2}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/orders/mine", nil)
	req.Header.Set("Authorization", bearer(t, "user-1", auth.RoleCustomer))
	recorder := serve(router, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var orders []domain.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&orders))
	assert.Len(t, orders, 2)
}

func TestHandler_orderQRCode(t *testing.T) {
	owner := "user-1"
	receipt, err := tokens.IssueReceipt(5)
	require.NoError(t, err)
	otherReceipt, err := tokens.IssueReceipt(6)
	require.NoError(t, err)

	tests := []struct {
		name         string
		query        string
		userID       string
		role         string
		order        *domain.Order
		expectedCode int
	}{
		{name: "receipt_token", query: "?token=" + url.QueryEscape(receipt), expectedCode: http.StatusOK},
		{name: "owner", userID: "user-1", role: auth.RoleCustomer, order: &domain.Order{ID: 5, UserID: &owner}, expectedCode: http.StatusOK},
		{name: "admin", userID: "admin-1", role: auth.RoleAdmin, order: &domain.Order{ID: 5, UserID: &owner}, expectedCode: http.StatusOK},
		{name: "anonymous", order: &domain.Order{ID: 5, UserID: &owner}, expectedCode: http.StatusNotFound},
		{name: "anonymous_guest_order", order: &domain.Order{ID: 5}, expectedCode: http.StatusNotFound},
		{name: "other_customer", userID: "user-2", role: auth.RoleCustomer, order: &domain.Order{ID: 5, UserID: &owner}, expectedCode: http.StatusNotFound},
		{name: "token_for_other_order", query: "?token=" + url.QueryEscape(otherReceipt), order: &domain.Order{ID: 5, UserID: &owner}, expectedCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			if testCase.order != nil {
				m.orders.On("Get", mock.Anything, 5).Return(testCase.order, nil).Once()
			}
			if testCase.expectedCode == http.StatusOK {
				m.orders.On("QRCode", mock.Anything, 5).Return([]byte("\x89PNG"), nil).Once()
			}

			req := httptest.NewRequest("GET", "/api/orders/5/qrcode"+testCase.query, nil)
			if testCase.userID != "" {
				req.Header.Set("Authorization", bearer(t, testCase.userID, testCase.role))
			}
			recorder := serve(router, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedCode == http.StatusOK {
				assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHandler_orderQRCode_UnknownOrder(t *testing.T) {
	router, m := setupTestRouter(t)
	m.orders.On("Get", mock.Anything, 99).Return(nil, service.ErrNotFound).Once()

	recorder := serve(router, httptest.NewRequest("GET", "/api/orders/99/qrcode", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_listOrders(t *testing.T) {
	router, m := setupTestRouter(t)
	m.orders.On("List", mock.Anything, domain.OrderFilter{Status: "pending", Page: 2}).
		Return(&domain.OrderPage{Orders: []domain.Order{}, Total: 25, Page: 2, Limit: 20}, nil).Once()

	req := httptest.NewRequest("GET", "/api/admin/orders?status=pending&page=2", nil)
	req.Header.Set("Authorization", bearer(t, "admin-1", auth.RoleAdmin))
	recorder := serve(router, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":25`)
}

func TestHandler_updateStatus(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		payload      string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name:    "success",
			role:    auth.RoleAdmin,
			payload: `{"status":"confirmed"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 5, "confirmed").
					Return(&domain.Order{ID: 5, Status: "confirmed"}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "invalid_transition",
			role:    auth.RoleAdmin,
			payload: `{"status":"pending"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 5, "pending").Return(nil, service.ErrInvalidTransition).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "unknown_status",
			role:    auth.RoleAdmin,
			payload: `{"status":"shipped"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 5, "shipped").Return(nil, service.ErrInvalidStatus).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "customer_forbidden",
			role:         auth.RoleCustomer,
			payload:      `{"status":"confirmed"}`,
			prepareMocks: func(handlerMocks) {},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("PATCH", "/api/admin/orders/5/status", bytes.NewBufferString(testCase.payload))
			req.Header.Set("Authorization", bearer(t, "someone", testCase.role))
			assert.Equal(t, testCase.expectedCode, serve(router, req).Code)
		})
	}
}

func TestHandler_deleteOrder(t *testing.T) {
	router, m := setupTestRouter(t)
	m.orders.On("Delete", mock.Anything, 5).Return(nil).Once()
	m.orders.On("Delete", mock.Anything, 6).Return(service.ErrNotFound).Once()

	for id, code := range map[string]int{"5": http.StatusNoContent, "6": http.StatusNotFound} {
		req := httptest.NewRequest("DELETE", "/api/admin/orders/"+id, nil)
		req.Header.Set("Authorization", bearer(t, "admin-1", auth.RoleAdmin))
		assert.Equal(t, code, serve(router, req).Code, id)
	}
}

func TestHandler_healthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)
	recorder := serve(router, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"service":"order-svc"`)
}
