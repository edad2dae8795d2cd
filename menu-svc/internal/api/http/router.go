package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the API and, when uploadDir is set, serves locally
// stored images under /uploads/.
func NewRouter(handler *Handler, uploadDir string) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	if uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler, log *logrus.Entry) {
	log.Infof("Menu Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
