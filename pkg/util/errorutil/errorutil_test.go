package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestStatusName(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "BAD_REQUEST"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{http.StatusMultiStatus, "MULTI_STATUS"},
		{799, "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusName(tt.status))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(http.StatusForbidden, "access denied")
	assert.Equal(t, ErrorResponse{Status: "FORBIDDEN", Code: 403, Message: "access denied"}, resp)
}

func TestToDomainError(t *testing.T) {
	t.Run("passes domain errors through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("saving todo: %w", NewInvalidRequest("todo not found"))
		de := ToDomainError(wrapped)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "todo not found", de.Message)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		de := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("hides unknown errors behind internal error", func(t *testing.T) {
		cause := errors.New("connection reset")
		de := ToDomainError(cause)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.Equal(t, "internal server error", de.Message)
		assert.ErrorIs(t, de, cause)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}
