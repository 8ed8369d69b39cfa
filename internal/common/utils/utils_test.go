package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
)

type sampleQuery struct {
	MemberID   int64  `query:"memberId" validate:"required,gt=0"`
	Strictness string `query:"strictness" validate:"oneof=strict normal relaxed"`
	Limit      int    `json:"limit" validate:"min=1,max=50"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(sampleQuery{MemberID: 1, Strictness: "normal", Limit: 20})
	assert.NoError(t, err)

	err = ValidateStruct(sampleQuery{Strictness: "loose", Limit: 60})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memberId is required")
	assert.Contains(t, err.Error(), "strictness must be one of: strict, normal, relaxed")
	assert.Contains(t, err.Error(), "limit must be at most 50")
}

func TestAppErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	AppErrorResponse(rec, apperr.Unavailable("Failed to fetch matches", errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to fetch matches", body.Error)
	assert.NotContains(t, rec.Body.String(), "password")
}
