package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-ordering/account-svc/internal/domain"
	"restaurant-ordering/account-svc/internal/service"
	"restaurant-ordering/auth"
	"restaurant-ordering/validation"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Gate interface {
	RequireUser(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

type Handler struct {
	Accounts service.AccountServiceInterface
	Profiles service.ProfileServiceInterface
	Auth     Gate
	Log      *logrus.Entry
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/admin/login", h.adminLogin).Methods("POST")
	r.HandleFunc("/api/auth/admin/verify", h.verifyAdmin).Methods("POST")
	r.Handle("/api/auth/role", h.Auth.RequireUser(http.HandlerFunc(h.role))).Methods("GET")

	profile := r.PathPrefix("/api/profile").Subrouter()
	profile.Use(h.Auth.RequireUser)
	profile.HandleFunc("", h.getProfile).Methods("GET")
	profile.HandleFunc("", h.updateProfile).Methods("PUT")

	admin := r.PathPrefix("/api/admin/users").Subrouter()
	admin.Use(h.Auth.RequireAdmin)
	admin.HandleFunc("", h.listUsers).Methods("GET")
	admin.HandleFunc("/invite", h.inviteAdmin).Methods("POST")
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
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotVerified), errors.Is(err, service.ErrNotAdmin):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.Log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
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
		"service":   "account-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Accounts.Signup(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Accounts.Login(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Accounts.AdminLogin(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) verifyAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Accounts.VerifyAdmin(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) role(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	role, err := h.Accounts.Role(r.Context(), claims.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  claims.UserID,
		"role":     role,
		"is_admin": role == auth.RoleAdmin,
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	profile, err := h.Profiles.Get(r.Context(), claims.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if !decode(w, r, &update) {
		return
	}
	claims, _ := auth.FromContext(r.Context())
	profile, err := h.Profiles.Update(r.Context(), claims.UserID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) inviteAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.InviteRequest
	if !decode(w, r, &req) {
		return
	}
	invite, err := h.Accounts.InviteAdmin(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, invite)
}
