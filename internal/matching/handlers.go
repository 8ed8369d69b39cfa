// internal/matching/handlers.go

package matching

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/utils"
)

// Handler handles match requests
type Handler struct {
	service Service
	limits  Limits
}

// NewHandler creates a new matching handler
func NewHandler(service Service, limits Limits) *Handler {
	return &Handler{service: service, limits: limits}
}

// FindMatches handles GET /api/v1/matches/find
func (h *Handler) FindMatches(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query(), h.limits)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	result, err := h.service.FindMatches(r.Context(), q)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, FindResponse{Success: true, Result: result})
}

// GetCompatibility handles GET /api/v1/matches/compatibility
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	memberID, err := positiveID(params.Get("memberId"), "memberId")
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}
	candidateID, err := positiveID(params.Get("candidateId"), "candidateId")
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	compat, err := h.service.Compatibility(r.Context(), memberID, candidateID)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, CompatibilityResponse{Success: true, Compatibility: compat})
}

func positiveID(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.InvalidInput("Missing " + name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput(name + " must be a positive integer")
	}
	return id, nil
}
