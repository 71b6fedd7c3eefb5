package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

func pageParams(c *fiber.Ctx) dto.PageParams {
	return dto.NewPageParams(c.Query("page"), c.Query("limit"))
}

func search(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Query("search"))
}

// parseBody decodifica el JSON; un cuerpo mal formado es un ValidationError.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("Invalid request body").WithCause(err)
	}
	return nil
}

// pathID id de la ruta; debe ser un UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := strings.TrimSpace(c.Params(name))
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NewValidationError("Validation failed", domain.FieldError{Field: name, Message: "must be a valid UUID"})
	}
	return id, nil
}
