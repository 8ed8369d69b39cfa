package matching

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()

	api.HandleFunc("/find", handler.FindMatches).Methods("GET")
	api.HandleFunc("/compatibility", handler.GetCompatibility).Methods("GET")
}
