package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/theme"
)

// AppearanceHandler manages the admin color palette and the active
// color and font pairing.
type AppearanceHandler struct {
	Store  *store.Store
	Admin  *AdminPages
	Secure bool
}

type appearanceReq struct {
	ColorID *string         `json:"color_id"`
	Fonts   json.RawMessage `json:"fonts"`
}

type appearanceResp struct {
	Primary string            `json:"primary"`
	Color   *models.UserColor `json:"color"`
	Fonts   theme.FontConfig  `json:"fonts"`
}

// stored reads the user's saved appearance, falling back to defaults.
func (h *AppearanceHandler) stored(c *fiber.Ctx, userID uuid.UUID) (appearanceResp, error) {
	ctx := c.UserContext()
	out := appearanceResp{Primary: theme.DefaultColor.String(), Fonts: theme.DefaultFonts}

	color, err := h.Store.ActiveColor(ctx, userID)
	switch {
	case err == nil:
		out.Color = color
		out.Primary = theme.HSL{H: color.HslH, S: color.HslS, L: color.HslL}.String()
	case !errors.Is(err, store.ErrNotFound):
		return out, err
	}

	raw, err := h.Store.ActiveFonts(ctx, userID)
	switch {
	case err == nil:
		if f, ok := theme.ParseFontConfig(raw); ok {
			out.Fonts = f
		}
	case !errors.Is(err, store.ErrNotFound):
		return out, err
	}
	return out, nil
}

func (h *AppearanceHandler) Get(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	out, err := h.stored(c, userID)
	if err != nil {
		return storeFail(c, "get appearance", err)
	}
	return success(c, out)
}

// Save stores the pick and refreshes both cookies so the next page load
// needs no theme query.
func (h *AppearanceHandler) Save(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req appearanceReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	errs := FieldErrors{}
	var colorID *uuid.UUID
	if trimmed(req.ColorID) != "" {
		id := checkUUID(errs, "color_id", req.ColorID, false)
		colorID = &id
	}
	var fonts []byte
	if s := strings.TrimSpace(string(req.Fonts)); s != "" && s != "null" {
		f, ok := theme.ParseFontConfig(req.Fonts)
		if !ok {
			errs.Add("fonts", "fonts must name a heading and body font from the catalogue")
		} else {
			fonts = f.JSON()
		}
	}
	if colorID == nil && fonts == nil && len(errs) == 0 {
		errs.Add("color_id", "color_id or fonts is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if _, err := h.Store.SaveAppearance(c.UserContext(), userID, colorID, fonts); err != nil {
		return storeFail(c, "save appearance", err)
	}
	out, err := h.stored(c, userID)
	if err != nil {
		return storeFail(c, "save appearance", err)
	}

	color, _ := theme.ParseHSL(out.Primary)
	c.Cookie(theme.NewColorCookie(color, h.Secure))
	c.Cookie(theme.NewFontCookie(out.Fonts, h.Secure))
	return success(c, out)
}

type colorReq struct {
	Name *string `json:"name"`
	Hex  *string `json:"hex"`
}

func (in colorReq) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "name", in.Name, creating)
	requireText(errs, "hex", in.Hex, creating)
	if s := trimmed(in.Hex); s != "" {
		if _, ok := theme.NormalizeHex(s); !ok {
			errs.Add("hex", "hex must look like #22c55e")
		}
	}
	return errs
}

func (h *AppearanceHandler) ListColors(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	colors, err := h.Store.ListColors(c.UserContext(), userID)
	if err != nil {
		return storeFail(c, "list colors", err)
	}
	return success(c, colors)
}

func (h *AppearanceHandler) CreateColor(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req colorReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := req.validate(true); len(errs) > 0 {
		return validationFail(c, errs)
	}

	hex, _ := theme.NormalizeHex(trimmed(req.Hex))
	hsl, err := theme.HexToHSL(hex)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	color := &models.UserColor{
		UserID: userID,
		Name:   trimmed(req.Name),
		Hex:    hex,
		HslH:   hsl.H,
		HslS:   hsl.S,
		HslL:   hsl.L,
	}
	if err := h.Store.CreateColor(c.UserContext(), color); err != nil {
		return storeFail(c, "create color", err)
	}
	return created(c, color)
}

func (h *AppearanceHandler) UpdateColor(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req colorReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := req.validate(false); len(errs) > 0 {
		return validationFail(c, errs)
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = trimmed(req.Name)
	}
	if req.Hex != nil {
		hex, _ := theme.NormalizeHex(trimmed(req.Hex))
		hsl, err := theme.HexToHSL(hex)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		fields["hex"] = hex
		fields["hsl_h"] = hsl.H
		fields["hsl_s"] = hsl.S
		fields["hsl_l"] = hsl.L
	}
	color, err := h.Store.UpdateColor(c.UserContext(), userID, id, fields)
	if err != nil {
		return storeFail(c, "update color", err)
	}
	active, err := h.isActiveColor(c, userID, id)
	if err != nil {
		return storeFail(c, "update color", err)
	}
	if active {
		c.Cookie(theme.NewColorCookie(theme.HSL{H: color.HslH, S: color.HslS, L: color.HslL}, h.Secure))
	}
	return success(c, color)
}

// isActiveColor reports whether id is the primary color of the user's
// active theme.
func (h *AppearanceHandler) isActiveColor(c *fiber.Ctx, userID, id uuid.UUID) (bool, error) {
	active, err := h.Store.ActiveColor(c.UserContext(), userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active.ID == id, nil
}

func (h *AppearanceHandler) DeleteColor(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	active, err := h.isActiveColor(c, userID, id)
	if err != nil {
		return storeFail(c, "delete color", err)
	}
	if err := h.Store.DeleteColor(c.UserContext(), userID, id); err != nil {
		return storeFail(c, "delete color", err)
	}
	if active {
		c.Cookie(theme.ExpiredColorCookie(h.Secure))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Color deleted"})
}

// SettingsPage renders /admin/settings.
func (h *AppearanceHandler) SettingsPage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/admin/login")
	}
	colors, err := h.Store.ListColors(c.UserContext(), userID)
	if err != nil {
		return err
	}
	current, err := h.stored(c, userID)
	if err != nil {
		return err
	}
	active := ""
	if current.Color != nil {
		active = current.Color.ID.String()
	}
	return h.Admin.render(c, "admin/settings", "settings", "Settings", fiber.Map{
		"Colors":        colors,
		"ActiveColorID": active,
		"Fonts":         theme.FontOptions,
		"Heading":       current.Fonts.Admin.Heading,
		"Body":          current.Fonts.Admin.Body,
	})
}
