package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/render"
)

type PublicHandler struct {
	Pages    *render.Assembler
	HomeSlug string
}

func (h *PublicHandler) Home(c *fiber.Ctx) error {
	return h.render(c, h.HomeSlug)
}

func (h *PublicHandler) Page(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !IsSlug(slug) {
		return fiber.ErrNotFound
	}
	return h.render(c, slug)
}

// render answers 200 with a loading placeholder for unknown or empty pages.
func (h *PublicHandler) render(c *fiber.Ctx, slug string) error {
	view, err := h.Pages.Page(c.UserContext(), slug)
	if err != nil {
		logging.Log.Error("assemble page", zap.String("slug", slug), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render("public/page", view, "layouts/public")
}
