package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

const basePath = "/demo-management/api/v1"

// NewRouter wires the demo routes and middleware. mediaDir, when
// non-empty, is mounted read-only under /media/.
func NewRouter(handler *Handler, mediaDir string) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationMiddleware)
	router.Use(LoggingMiddleware)

	v1 := router.PathPrefix(basePath).Subrouter()
	v1.HandleFunc("/health/", handler.Health).Methods(http.MethodGet)
	v1.HandleFunc("/demo/create/", handler.CreateDemo).Methods(http.MethodPost)
	v1.HandleFunc("/demo/read/{demo_id}/", handler.ReadDemo).Methods(http.MethodGet)
	v1.HandleFunc("/demos/", handler.ListDemos).Methods(http.MethodGet)
	v1.HandleFunc("/demo/update/status/{demo_id}/", handler.UpdateDemoStatus).Methods(http.MethodPatch)
	v1.HandleFunc("/demo/update/is-active/{demo_id}/", handler.UpdateDemoIsActive).Methods(http.MethodPatch)
	v1.HandleFunc("/demo/update/{demo_id}/", handler.UpdateDemo).Methods(http.MethodPatch)
	v1.HandleFunc("/demo/delete/{demo_id}/", handler.DeleteDemo).Methods(http.MethodDelete)

	if mediaDir != "" {
		router.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	return router
}
