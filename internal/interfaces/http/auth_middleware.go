package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/pkg/jwt"
)

// Locals keys de la identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthMiddleware valida el Bearer Token emitido por el proveedor de identidad y guarda el sub
// como dueño de los datos. issuer vacío no valida el emisor.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.NewUnauthorizedError("Expected format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return domain.NewUnauthorizedError("Empty bearer token")
		}
		id, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("Invalid or expired token")
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// userID igual que GetUserID pero falla con 401 si no hay identidad.
func userID(c *fiber.Ctx) (string, error) {
	id := GetUserID(c)
	if id == "" {
		return "", domain.NewUnauthorizedError("")
	}
	return id, nil
}
