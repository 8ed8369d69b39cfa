// internal/members/handlers.go

package members

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/utils"
)

// Handler handles member directory requests
type Handler struct {
	service Service
}

// NewHandler creates a new member handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMembers handles GET /api/v1/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := optionalInt(q, "limit")
	if err != nil {
		utils.ErrorResponse(w, "limit must be an integer", http.StatusBadRequest)
		return
	}
	offset, err := optionalInt(q, "offset")
	if err != nil {
		utils.ErrorResponse(w, "offset must be an integer", http.StatusBadRequest)
		return
	}

	var l, o int
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}

	page, err := h.service.ListMembers(r.Context(), l, o)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ListResponse{Success: true, Page: page})
}

// GetMember handles GET /api/v1/members/{id}
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorResponse(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	member, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, MemberResponse{Success: true, Member: member})
}

// SearchMembers handles GET /api/v1/members/search
func (h *Handler) SearchMembers(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseSearchCriteria(r.URL.Query())
	if err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(criteria); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, SearchResponse{
		Success:  true,
		Members:  result,
		Criteria: criteria,
	})
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return e.name + " must be an integer"
}

func optionalInt(q url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name: name}
	}
	return &n, nil
}

func parseSearchCriteria(q url.Values) (SearchCriteria, error) {
	criteria := SearchCriteria{
		Gender:    strings.TrimSpace(q.Get("gender")),
		Religion:  strings.TrimSpace(q.Get("religion")),
		HasKids:   strings.ToLower(strings.TrimSpace(q.Get("hasKids"))),
		Ethnicity: strings.TrimSpace(q.Get("ethnicity")),
		State:     strings.TrimSpace(q.Get("state")),
		Limit:     20,
	}

	var err error
	if criteria.MinAge, err = optionalInt(q, "minAge"); err != nil {
		return criteria, err
	}
	if criteria.MaxAge, err = optionalInt(q, "maxAge"); err != nil {
		return criteria, err
	}

	limit, err := optionalInt(q, "limit")
	if err != nil {
		return criteria, err
	}
	if limit != nil {
		criteria.Limit = *limit
	}

	return criteria, nil
}
