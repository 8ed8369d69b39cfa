package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("memberId is required"), http.StatusBadRequest},
		{"not found", NotFound("Member not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("Member not found")), http.StatusNotFound},
		{"unavailable", Unavailable("Failed to fetch matches", sql.ErrConnDone), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUnavailableHidesCause(t *testing.T) {
	err := Unavailable("Failed to fetch matches", errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, "Failed to fetch matches", PublicMessage(err))
	assert.ErrorIs(t, err, err.Err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}
