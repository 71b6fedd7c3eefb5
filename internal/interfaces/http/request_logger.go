package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

const localRequestID = "requestid"

// RequestLogger registra método, ruta, status, latencia y request id. Debe ir después de requestid.New.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = errorBody(err)
		}
		log.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localRequestID).(string); ok && v != "" {
		return v
	}
	return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
}
