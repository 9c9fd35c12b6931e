package middleware

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/theme"
)

// chunkSize is the write size fed to the head injector.
const chunkSize = 4096

// Appearance injects the resolved color and font tags into every HTML
// response, right after <head>. Values read from the store are written back
// as cookies so later requests resolve without a query.
func Appearance(r *theme.Resolver, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			// render error pages now so they get the theme too
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}

		ct := string(c.Response().Header.ContentType())
		if !strings.HasPrefix(ct, fiber.MIMETextHTML) {
			return nil
		}

		var userID *uuid.UUID
		if raw, ok := c.Locals("userId").(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				userID = &id
			}
		}
		a := r.Resolve(c.UserContext(), theme.Request{
			ColorCookie: c.Cookies(theme.ColorCookie),
			FontCookie:  c.Cookies(theme.FontCookie),
			UserID:      userID,
		})
		if a.ColorFrom == theme.FromStore {
			c.Cookie(theme.NewColorCookie(a.Color, secure))
		}
		if a.FontsFrom == theme.FromStore {
			c.Cookie(theme.NewFontCookie(a.Fonts, secure))
		}

		var out bytes.Buffer
		inj := theme.NewHeadInjector(&out, theme.HeadTags(a))
		body := c.Response().Body()
		for len(body) > 0 {
			n := min(len(body), chunkSize)
			if _, err := inj.Write(body[:n]); err != nil {
				return err
			}
			body = body[n:]
		}
		if err := inj.Close(); err != nil {
			return err
		}
		c.Response().SetBody(out.Bytes())
		return nil
	}
}
