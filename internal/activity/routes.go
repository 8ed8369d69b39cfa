package activity

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the activity endpoints. middleware wraps every route, typically with
// the per-request member loader.
func RegisterRoutes(router *mux.Router, handler *Handler, middleware ...mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/activity").Subrouter()
	api.Use(middleware...)

	// Match registry
	api.HandleFunc("/save", handler.SaveMatch).Methods("POST")
	api.HandleFunc("/exclude", handler.ExcludeMatch).Methods("POST")
	api.HandleFunc("/saved", handler.GetSaved).Methods("GET")

	// Feed
	api.HandleFunc("/recent", handler.GetRecent).Methods("GET")
	api.HandleFunc("/statistics", handler.GetStatistics).Methods("GET")
}
