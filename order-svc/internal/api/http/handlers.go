package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"restaurant-ordering/auth"
	"restaurant-ordering/order-svc/internal/domain"
	"restaurant-ordering/order-svc/internal/service"
	"restaurant-ordering/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SessionHeader carries the guest cart session between storefront and API.
const SessionHeader = "X-Session-ID"

type Gate interface {
	Optional(next http.Handler) http.Handler
	RequireUser(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

// ReceiptSigner issues the per-order token carried by receipt QR links.
type ReceiptSigner interface {
	IssueReceipt(orderID int) (string, error)
	VerifyReceipt(token string, orderID int) bool
}

type Handler struct {
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
	Orders   service.OrderServiceInterface
	Auth     Gate
	Receipts ReceiptSigner
	Log      *logrus.Entry
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	cart := r.PathPrefix("/api/cart").Subrouter()
	cart.Use(h.Auth.Optional)
	cart.HandleFunc("", h.getCart).Methods("GET")
	cart.HandleFunc("", h.clearCart).Methods("DELETE")
	cart.HandleFunc("/totals", h.cartTotals).Methods("GET")
	cart.HandleFunc("/items", h.addCartItem).Methods("POST")
	cart.HandleFunc("/items/{id:[0-9]+}", h.updateCartItem).Methods("PUT")
	cart.HandleFunc("/items/{id:[0-9]+}", h.removeCartItem).Methods("DELETE")
	cart.Handle("/merge", h.Auth.RequireUser(http.HandlerFunc(h.mergeCart))).Methods("POST")

	r.Handle("/api/checkout", h.Auth.Optional(http.HandlerFunc(h.checkout))).Methods("POST")

	r.Handle("/api/orders/mine", h.Auth.RequireUser(http.HandlerFunc(h.myOrders))).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", h.Auth.RequireUser(http.HandlerFunc(h.getOrder))).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}/qrcode", h.Auth.Optional(http.HandlerFunc(h.orderQRCode))).Methods("GET")

	admin := r.PathPrefix("/api/admin/orders").Subrouter()
	admin.Use(h.Auth.RequireAdmin)
	admin.HandleFunc("", h.listOrders).Methods("GET")
	admin.HandleFunc("/{id:[0-9]+}", h.getOrder).Methods("GET")
	admin.HandleFunc("/{id:[0-9]+}/status", h.updateStatus).Methods("PATCH")
	admin.HandleFunc("/{id:[0-9]+}/payment", h.updatePayment).Methods("PATCH")
	admin.HandleFunc("/{id:[0-9]+}", h.deleteOrder).Methods("DELETE")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if verrs, ok := validation.As(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": verrs})
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotInCart), errors.Is(err, service.ErrUnknownItem):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOutOfStock), errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidPayment), errors.Is(err, service.ErrMissingOwner):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// owner resolves whose cart a request addresses. Guests without a session
// get a fresh one, echoed back in the response header.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) domain.CartOwner {
	owner := domain.CartOwner{SessionID: r.Header.Get(SessionHeader)}
	if claims, ok := auth.FromContext(r.Context()); ok {
		owner.UserID = claims.UserID
		return owner
	}
	if owner.SessionID == "" {
		owner.SessionID = uuid.NewString()
	}
	w.Header().Set(SessionHeader, owner.SessionID)
	return owner
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), h.owner(w, r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) cartTotals(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), h.owner(w, r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart.Totals)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), h.owner(w, r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuItemID int `json:"menu_item_id"`
		Quantity   int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cart, err := h.Carts.Add(r.Context(), h.owner(w, r), payload.MenuItemID, payload.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cart, err := h.Carts.UpdateQuantity(r.Context(), h.owner(w, r), pathID(r), payload.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Remove(r.Context(), h.owner(w, r), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) mergeCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	cart, err := h.Carts.Merge(r.Context(), r.Header.Get(SessionHeader), claims.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Checkout.PlaceOrder(r.Context(), h.owner(w, r), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	receipt, err := h.Receipts.IssueReceipt(order.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":       order,
		"receipt_url": h.Orders.QRLink(order.ID),
		"qr_code_url": "/api/orders/" + strconv.Itoa(order.ID) + "/qrcode?token=" + url.QueryEscape(receipt),
	})
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	orders, err := h.Orders.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// getOrder hides orders of other customers behind a 404.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	claims, _ := auth.FromContext(r.Context())
	if !claims.IsAdmin() && (order.UserID == nil || *order.UserID != claims.UserID) {
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// orderQRCode serves the receipt QR to the holder of the checkout link token,
// the owning customer or an admin. Everyone else gets a 404.
func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if !h.Receipts.VerifyReceipt(r.URL.Query().Get("token"), id) {
		order, err := h.Orders.Get(r.Context(), id)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		claims, _ := auth.FromContext(r.Context())
		if !claims.IsAdmin() && (claims == nil || order.UserID == nil || *order.UserID != claims.UserID) {
			writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
			return
		}
	}
	png, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Write(png)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OrderFilter{Status: q.Get("status")}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	page, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func decodeStatus(r *http.Request) (string, error) {
	var payload struct {
		Status string `json:"status"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	return payload.Status, err
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	status, err := decodeStatus(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), pathID(r), status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	status, err := decodeStatus(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Orders.UpdatePaymentStatus(r.Context(), pathID(r), status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(r.Context(), pathID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
