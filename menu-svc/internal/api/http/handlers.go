package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-ordering/menu-svc/internal/domain"
	"restaurant-ordering/menu-svc/internal/service"
	"restaurant-ordering/validation"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxUploadSize = 10 << 20

// AdminGate wraps handlers that require an authenticated administrator.
type AdminGate interface {
	RequireAdmin(next http.Handler) http.Handler
}

type Handler struct {
	Menu       service.MenuServiceInterface
	Categories service.CategoryServiceInterface
	Gallery    service.GalleryServiceInterface
	Team       service.TeamServiceInterface
	Settings   service.SettingsServiceInterface
	Auth       AdminGate
	Log        *logrus.Entry
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu/{id:[0-9]+}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/gallery", h.listGallery).Methods("GET")
	r.HandleFunc("/api/team", h.listTeam).Methods("GET")
	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.Auth.RequireAdmin)

	admin.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{id:[0-9]+}", h.updateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu/{id:[0-9]+}", h.deleteMenuItem).Methods("DELETE")
	admin.HandleFunc("/menu/{id:[0-9]+}/featured", h.toggleFeatured).Methods("POST")
	admin.HandleFunc("/menu/{id:[0-9]+}/stock", h.toggleInStock).Methods("POST")
	admin.HandleFunc("/menu/{id:[0-9]+}/image", h.uploadMenuImage).Methods("POST")

	admin.HandleFunc("/categories", h.createCategory).Methods("POST")
	admin.HandleFunc("/categories/order", h.reorderCategories).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", h.updateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", h.deleteCategory).Methods("DELETE")

	admin.HandleFunc("/gallery", h.createGalleryImage).Methods("POST")
	admin.HandleFunc("/gallery/upload", h.uploadGalleryImage).Methods("POST")
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.updateGalleryImage).Methods("PUT")
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.deleteGalleryImage).Methods("DELETE")
	admin.HandleFunc("/gallery/{id:[0-9]+}/featured", h.toggleGalleryFeatured).Methods("POST")

	admin.HandleFunc("/team", h.createTeamMember).Methods("POST")
	admin.HandleFunc("/team/{id:[0-9]+}", h.updateTeamMember).Methods("PUT")
	admin.HandleFunc("/team/{id:[0-9]+}", h.deleteTeamMember).Methods("DELETE")

	admin.HandleFunc("/settings", h.updateSettings).Methods("PATCH")
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
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrCategoryInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidImage), errors.Is(err, service.ErrUnknownCategory):
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

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MenuFilter{
		Category:    q.Get("category"),
		Search:      q.Get("search"),
		InStockOnly: q.Get("in_stock") == "true",
	}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "featured must be true or false")
			return
		}
		filter.Featured = &featured
	}
	items, err := h.Menu.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	item := domain.MenuItem{InStock: true}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = pathID(r)
	if err := h.Menu.Update(r.Context(), &item); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Delete(r.Context(), pathID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleFeatured(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.ToggleFeatured(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) toggleInStock(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.ToggleInStock(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) uploadMenuImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error retrieving the file")
		return
	}
	defer file.Close()

	url, err := h.Menu.UploadImage(r.Context(), pathID(r), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": url,
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Categories.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var cat domain.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Categories.Create(r.Context(), &cat); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var cat domain.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat.ID = pathID(r)
	if err := h.Categories.Update(r.Context(), &cat); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Categories.Delete(r.Context(), pathID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reorderCategories(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Categories.Reorder(r.Context(), body.IDs); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.Gallery.List(r.Context(), r.URL.Query().Get("featured") == "true")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if images == nil {
		images = []domain.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *Handler) createGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img domain.GalleryImage
	if err := json.NewDecoder(r.Body).Decode(&img); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Gallery.Create(r.Context(), &img); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *Handler) uploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error retrieving the file")
		return
	}
	defer file.Close()

	img, err := h.Gallery.Upload(r.Context(), r.FormValue("title"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *Handler) updateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img domain.GalleryImage
	if err := json.NewDecoder(r.Body).Decode(&img); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	img.ID = pathID(r)
	if err := h.Gallery.Update(r.Context(), &img); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *Handler) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.Gallery.Delete(r.Context(), pathID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleGalleryFeatured(w http.ResponseWriter, r *http.Request) {
	img, err := h.Gallery.ToggleFeatured(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *Handler) listTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.Team.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) createTeamMember(w http.ResponseWriter, r *http.Request) {
	var m domain.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Team.Create(r.Context(), &m); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) updateTeamMember(w http.ResponseWriter, r *http.Request) {
	var m domain.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.ID = pathID(r)
	if err := h.Team.Update(r.Context(), &m); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) deleteTeamMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Team.Delete(r.Context(), pathID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var update domain.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := h.Settings.Update(r.Context(), update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
