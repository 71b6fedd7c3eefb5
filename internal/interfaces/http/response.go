package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

// ── Envelope de éxito ──

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.SuccessResponse{Success: true, Data: data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{Success: true, Data: data})
}

func paged[T any](c *fiber.Ctx, res *dto.PageResult[T], p dto.PageParams) error {
	meta := dto.NewMeta(p.Page, p.Limit, res.Total)
	return c.JSON(dto.SuccessResponse{Success: true, Data: res.Items, Meta: &meta})
}

func deleted(c *fiber.Ctx, id string) error {
	return ok(c, fiber.Map{"id": id, "deleted": true})
}

// ── Envelope de error ──

// ErrorHandler convierte cualquier error devuelto por un handler en el envelope de error.
// Los 5xx se registran con el request id y nunca exponen el mensaje interno.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := errorBody(err)
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("petición fallida")
		return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: body})
	}
}

func errorBody(err error) (int, dto.ErrorBody) {
	if ae, ok := domain.As(err); ok {
		return ae.Status, dto.ErrorBody{Code: ae.Code, Message: ae.Message, Details: ae.Details}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := fe.Message
		if fe.Code >= fiber.StatusInternalServerError {
			msg = utils.StatusMessage(fe.Code)
		}
		return fe.Code, dto.ErrorBody{Code: statusCode(fe.Code), Message: msg}
	}
	return fiber.StatusInternalServerError, dto.ErrorBody{Code: domain.CodeInternal, Message: "Internal server error"}
}

// statusCode "Not Found" -> NOT_FOUND.
func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return domain.CodeValidation
	case fiber.StatusInternalServerError:
		return domain.CodeInternal
	}
	msg := utils.StatusMessage(status)
	if msg == "" {
		return domain.CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(msg, " ", "_"))
}
