package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-ordering/notify-svc/internal/domain"
	"restaurant-ordering/notify-svc/internal/service"
	"restaurant-ordering/validation"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Gate interface {
	RequireAdmin(next http.Handler) http.Handler
}

type Handler struct {
	Notifier service.NotifierInterface
	Auth     Gate
	Log      *logrus.Entry
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/newsletter", h.subscribe).Methods("POST")

	fn := r.PathPrefix("/functions").Subrouter()
	fn.Use(h.Auth.RequireAdmin)
	fn.HandleFunc("/send-order-confirmation", h.sendOrderConfirmation).Methods("POST")
	fn.HandleFunc("/send-admin-verification", h.sendAdminVerification).Methods("POST")
	fn.HandleFunc("/send-newsletter-welcome", h.sendNewsletterWelcome).Methods("POST")
	fn.HandleFunc("/send-test-email", h.sendTestEmail).Methods("POST")
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
	if errors.Is(err, service.ErrAlreadySubscribed) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.Log.WithError(err).WithField("path", r.URL.Path).Error("Email delivery failed")
	writeError(w, http.StatusBadGateway, "failed to send email")
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "notify-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) sent(w http.ResponseWriter, r *http.Request, id string, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) sendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var msg domain.OrderConfirmation
	if !decode(w, r, &msg) {
		return
	}
	id, err := h.Notifier.SendOrderConfirmation(r.Context(), msg)
	h.sent(w, r, id, err)
}

func (h *Handler) sendAdminVerification(w http.ResponseWriter, r *http.Request) {
	var msg domain.AdminVerification
	if !decode(w, r, &msg) {
		return
	}
	id, err := h.Notifier.SendAdminVerification(r.Context(), msg)
	h.sent(w, r, id, err)
}

func (h *Handler) sendNewsletterWelcome(w http.ResponseWriter, r *http.Request) {
	var msg domain.NewsletterWelcome
	if !decode(w, r, &msg) {
		return
	}
	id, err := h.Notifier.SendNewsletterWelcome(r.Context(), msg)
	h.sent(w, r, id, err)
}

func (h *Handler) sendTestEmail(w http.ResponseWriter, r *http.Request) {
	var msg domain.TestEmail
	if !decode(w, r, &msg) {
		return
	}
	id, err := h.Notifier.SendTestEmail(r.Context(), msg)
	h.sent(w, r, id, err)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var msg domain.NewsletterWelcome
	if !decode(w, r, &msg) {
		return
	}
	id, err := h.Notifier.Subscribe(r.Context(), msg)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
