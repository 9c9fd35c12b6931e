package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/config"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

const (
	stateCookie = "oauth_state"
	nextCookie  = "oauth_next"
)

// GoogleOAuthHandler signs in existing CMS users with their Google account.
// Unknown emails are turned away; accounts are created with create-admin.
type GoogleOAuthHandler struct {
	Auth           *AuthHandler
	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
	// UserInfoURL is overridable for tests.
	UserInfoURL string
}

func NewGoogleOAuthHandler(auth *AuthHandler, cfg config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		Auth:           auth,
		GoogleClientID: cfg.GoogleClientID,
		GoogleSecret:   cfg.GoogleSecret,
		GoogleRedirect: cfg.GoogleRedirect,
		UserInfoURL:    "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/admin"
	}
	return next
}

func (h *GoogleOAuthHandler) tempCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Auth.Secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)
	h.tempCookie(c, stateCookie, st, 10*60)
	h.tempCookie(c, nextCookie, safeNext(c.Query("next", "/admin")), 10*60)

	return c.Redirect(h.oauthCfg().AuthCodeURL(st), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) loginError(c *fiber.Ctx, msg string) error {
	return c.Redirect("/admin/login?err="+url.QueryEscape(msg), http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing code/state")
	}
	if st := c.Cookies(stateCookie); st == "" || st != state {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state")
	}
	next := safeNext(c.Cookies(nextCookie))
	h.tempCookie(c, stateCookie, "", -1)
	h.tempCookie(c, nextCookie, "", -1)

	ctx := c.UserContext()
	tok, err := h.oauthCfg().Exchange(ctx, code)
	if err != nil {
		logging.Log.Warn("google code exchange", zap.Error(err))
		return h.loginError(c, "Google sign-in failed")
	}

	resp, err := h.oauthCfg().Client(ctx, tok).Get(h.UserInfoURL)
	if err != nil {
		logging.Log.Warn("google userinfo", zap.Error(err))
		return h.loginError(c, "Google sign-in failed")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return h.loginError(c, "Google sign-in failed")
	}
	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return h.loginError(c, "Google account has no verified email")
	}

	u, err := h.Auth.Store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return h.loginError(c, "No admin account for "+email)
	}
	if err != nil {
		logging.Log.Error("google login lookup", zap.Error(err))
		return h.loginError(c, "Server error")
	}
	if !u.IsActive {
		return h.loginError(c, "Account is disabled")
	}

	if err := h.Auth.startSession(c, u); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to sign jwt")
	}
	return c.Redirect(next, http.StatusTemporaryRedirect)
}
