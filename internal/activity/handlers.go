// internal/activity/handlers.go

package activity

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/utils"
)

// Handler handles match registry and activity requests
type Handler struct {
	service Service
}

// NewHandler creates a new activity handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SaveMatch handles POST /api/v1/activity/save
func (h *Handler) SaveMatch(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, ActionSave, h.service.Save)
}

// ExcludeMatch handles POST /api/v1/activity/exclude
func (h *Handler) ExcludeMatch(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, ActionExclude, h.service.Exclude)
}

func (h *Handler) pairAction(w http.ResponseWriter, r *http.Request, action Action, fn func(ctx context.Context, memberID, candidateID int64) error) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := fn(r.Context(), req.MemberID, req.CandidateID); err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, PairResponse{
		Success:     true,
		Action:      action,
		MemberID:    req.MemberID,
		CandidateID: req.CandidateID,
	})
}

// GetSaved handles GET /api/v1/activity/saved
func (h *Handler) GetSaved(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	saved, err := h.service.SavedMatches(r.Context(), memberID)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, SavedResponse{Success: true, Saved: saved})
}

// GetRecent handles GET /api/v1/activity/recent
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponse(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.service.Recent(r.Context(), memberID, limit)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, RecentResponse{Success: true, Activities: entries})
}

// GetStatistics handles GET /api/v1/activity/statistics
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Statistics(r.Context(), memberID)
	if err != nil {
		utils.AppErrorResponse(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, StatisticsResponse{Success: true, Statistics: stats})
}

func memberIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("memberId"))
	if raw == "" {
		utils.ErrorResponse(w, "Missing member ID", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorResponse(w, "Invalid member ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
