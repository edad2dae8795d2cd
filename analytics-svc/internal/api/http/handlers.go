package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"restaurant-ordering/analytics-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Gate interface {
	RequireAdmin(next http.Handler) http.Handler
}

type Handler struct {
	Dashboard service.DashboardServiceInterface
	Auth      Gate
	Log       *logrus.Entry
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/api/admin/dashboard", h.Auth.RequireAdmin(http.HandlerFunc(h.getDashboard))).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Dashboard(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("Failed to build dashboard")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, d)
}
