package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

// AttachJWTLocals copies the verified claims into Locals("userId") and
// Locals("role") for handlers. It must run after JWTFromCookie.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*utils.Claims)
		if !ok || claims == nil {
			return unauthorized(c)
		}
		if strings.TrimSpace(claims.UserID) == "" {
			return unauthorized(c)
		}
		setIdentity(c, claims)
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, claims *utils.Claims) {
	c.Locals("userId", strings.TrimSpace(claims.UserID))
	c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))
}
