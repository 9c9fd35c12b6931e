package theme

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieMaxAge keeps appearance cookies for a year.
const CookieMaxAge = 365 * 24 * 60 * 60

// Both cookies stay readable from scripts: the restore script needs the color.
func appearanceCookie(name, value string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    EncodeCookie(value),
		Path:     "/",
		MaxAge:   CookieMaxAge,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func NewColorCookie(c HSL, secure bool) *fiber.Cookie {
	return appearanceCookie(ColorCookie, c.String(), secure)
}

func NewFontCookie(f FontConfig, secure bool) *fiber.Cookie {
	return appearanceCookie(FontCookie, string(f.JSON()), secure)
}

// ExpiredColorCookie drops the color cookie so the next request resolves the
// color from the store again.
func ExpiredColorCookie(secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     ColorCookie,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
