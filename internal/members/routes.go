// internal/members/routes.go

package members

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the member directory routes on a chi router.
// The router is mounted under /api/v1/members by the caller.
func RegisterRoutes(r chi.Router, handler *Handler) {
	r.Get("/", handler.ListMembers)
	r.Get("/search", handler.SearchMembers)
	r.Get("/{id}", handler.GetMember)
}

// NewRouter builds the standalone member sub-router
func NewRouter(handler *Handler) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, handler)
	return r
}
