package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

// JWTFromCookie verifies the session cookie and stores its claims under
// Locals("user"). Anonymous requests to admin pages are sent to the login
// page; everything else gets a 401 JSON body.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := sessionClaims(c, secret)
		if !ok {
			return unauthorized(c)
		}
		c.Locals("user", claims)
		return c.Next()
	}
}

// OptionalJWT is JWTFromCookie without the rejection, for routes that only
// personalise output for signed-in users.
func OptionalJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := sessionClaims(c, secret); ok {
			c.Locals("user", claims)
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

func sessionClaims(c *fiber.Ctx, secret string) (*utils.Claims, bool) {
	tokenStr := c.Cookies(utils.SessionCookie)
	if tokenStr == "" {
		return nil, false
	}
	claims, err := utils.ParseJWT(secret, tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func wantsPage(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/admin" || strings.HasPrefix(p, "/admin/")
}

func unauthorized(c *fiber.Ctx) error {
	if wantsPage(c) {
		return c.Redirect("/admin/login?next=" + url.QueryEscape(c.OriginalURL()))
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthorized",
	})
}
