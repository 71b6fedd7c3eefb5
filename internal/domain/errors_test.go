package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/domain"
)

func TestAs_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"not found", domain.NewNotFoundError("User"), http.StatusNotFound, "NOT_FOUND", "User not found"},
		{"validation", domain.NewValidationError("bad shape"), http.StatusBadRequest, "VALIDATION_ERROR", "bad shape"},
		{"unauthorized", domain.NewUnauthorizedError(""), http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
		{"app error", domain.NewAppError(http.StatusTeapot, "TEAPOT", "short and stout"), http.StatusTeapot, "TEAPOT", "short and stout"},
		{"wrapped not found", fmt.Errorf("get deal: %w", domain.NewNotFoundError("Deal")), http.StatusNotFound, "NOT_FOUND", "Deal not found"},
		{"duplicate sentinel", fmt.Errorf("insert: %w", domain.ErrDuplicate), http.StatusConflict, "CONFLICT", "Resource already exists"},
		{"forbidden sentinel", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae, ok := domain.As(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.status, ae.Status)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.msg, ae.Message)
		})
	}
}

func TestAs_Unclassified(t *testing.T) {
	_, ok := domain.As(errors.New("boom"))
	assert.False(t, ok)
}

func TestValidationError_Details(t *testing.T) {
	ve := domain.NewValidationError("Validation failed", domain.FieldError{Field: "title", Message: "is required"})
	ae, ok := domain.As(ve)
	require.True(t, ok)
	assert.Equal(t, []domain.FieldError{{Field: "title", Message: "is required"}}, ae.Details)
}

func TestNotFoundError_IsSentinel(t *testing.T) {
	assert.True(t, errors.Is(domain.NewNotFoundError("Song"), domain.ErrNotFound))
}
