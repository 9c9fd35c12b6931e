package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/config"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
	Expires   int
	Secure    bool
	// Google enables the "Sign in with Google" button.
	Google bool
}

func NewAuthHandler(s *store.Store, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		Store:     s,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
		Secure:    cfg.SecureCookies,
		Google:    cfg.GoogleEnabled(),
	}
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPage renders the sign-in form; signed-in users go straight to the dashboard.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if raw := c.Cookies(utils.SessionCookie); raw != "" {
		if _, err := utils.ParseJWT(h.JWTSecret, raw); err == nil {
			return c.Redirect("/admin")
		}
	}
	return c.Render("admin/login", fiber.Map{
		"Title":         "Sign in",
		"GoogleEnabled": h.Google,
		"Error":         c.Query("err"),
	}, "layouts/admin")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email is not valid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	u, err := h.Store.GetUserByEmail(c.UserContext(), email)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if err != nil {
		return storeFail(c, "login", err)
	}
	if !u.IsActive {
		return fail(c, fiber.StatusForbidden, "Account is disabled")
	}
	if !utils.CheckPassword(u.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	if err := h.startSession(c, u); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not create token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed in",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			},
		},
	})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, u *models.User) error {
	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
	return nil
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed out",
	})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, ok := currentUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	u, err := h.Store.GetUser(c.UserContext(), id)
	if err != nil {
		return storeFail(c, "me", err)
	}
	return success(c, u)
}
