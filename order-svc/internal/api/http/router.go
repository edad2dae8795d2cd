package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type", SessionHeader},
		ExposedHeaders: []string{SessionHeader},
	})
	return c.Handler(r)
}

func StartServer(addr string, handler http.Handler, log *logrus.Entry) {
	log.Infof("Order Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
