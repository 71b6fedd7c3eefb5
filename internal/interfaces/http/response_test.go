package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	apphttp "github.com/jhoicas/syncdesk-api/internal/interfaces/http"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details bool
	}{
		{"validation con detalle", domain.NewValidationError("Validation failed", domain.FieldError{Field: "title", Message: "is required"}), http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", true},
		{"not found", domain.NewNotFoundError("Song"), http.StatusNotFound, "NOT_FOUND", "Song not found", false},
		{"not found envuelto", fmt.Errorf("get: %w", domain.NewNotFoundError("Deal")), http.StatusNotFound, "NOT_FOUND", "Deal not found", false},
		{"unauthorized", domain.NewUnauthorizedError(""), http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", false},
		{"app error", domain.NewAppError(http.StatusGatewayTimeout, "AI_TIMEOUT", "AI analysis timed out"), http.StatusGatewayTimeout, "AI_TIMEOUT", "AI analysis timed out", false},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "CONFLICT", "Resource already exists", false},
		{"fiber 404", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Not Found", false},
		{"fiber 405", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed", false},
		{"no clasificado", errors.New("pq: connection refused at 10.0.0.3"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
			app.Get("/boom", func(c *fiber.Ctx) error { return tt.err })

			resp := doGet(t, app, "/boom", "")
			assert.Equal(t, tt.status, resp.StatusCode)
			env := decode(t, resp)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, tt.message, env.Error.Message)
			if tt.details {
				assert.JSONEq(t, `[{"field":"title","message":"is required"}]`, string(env.Error.Details))
			} else {
				assert.Empty(t, env.Error.Details)
			}
		})
	}
}

func TestErrorHandler_RecoveredPanic(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Use(recover.New())
	app.Get("/panic", func(c *fiber.Ctx) error { panic("nil map") })

	resp := doGet(t, app, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decode(t, resp)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "nil map")
}
