package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/theme"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

const testSecret = "test-secret"

const page = `<!doctype html><html lang="en"><head><title>t</title></head><body>hi</body></html>`

type stubSource struct {
	color *models.UserColor
	calls int
}

func (s *stubSource) ActiveColor(context.Context, uuid.UUID) (*models.UserColor, error) {
	s.calls++
	return s.color, nil
}

func (s *stubSource) ActiveFonts(context.Context, uuid.UUID) (datatypes.JSON, error) {
	s.calls++
	return datatypes.JSON(`{"admin":{"heading":"inter","body":"geist-sans"}}`), nil
}

func appearanceApp(src theme.Source, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("userId", userID)
		}
		return c.Next()
	})
	app.Use(Appearance(theme.NewResolver(src), false))
	app.Get("/page", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString(page)
	})
	app.Get("/json", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAppearanceInjectsDefaultsAfterHead(t *testing.T) {
	app := appearanceApp(nil, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/page", nil))
	require.NoError(t, err)
	out := readBody(t, resp)

	head := strings.Index(out, "<head>")
	style := strings.Index(out, `<style id="primary-color-inline">`)
	require.GreaterOrEqual(t, head, 0)
	require.Greater(t, style, head)
	assert.Less(t, style, strings.Index(out, "<title>"))
	assert.Contains(t, out, "--primary:142 71% 45%!important")
	assert.Contains(t, out, `<style id="font-family-inline">`)
	assert.Contains(t, out, "<body>hi</body>")
	assert.Empty(t, resp.Header.Values(fiber.HeaderSetCookie))
}

func TestAppearanceCookieWinsWithoutStoreQuery(t *testing.T) {
	src := &stubSource{color: &models.UserColor{HslH: 10, HslS: 20, HslL: 30}}
	app := appearanceApp(src, uuid.NewString())

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Cookie", theme.ColorCookie+"=200%2080%25%2050%25; "+
		theme.FontCookie+"="+theme.EncodeCookie(`{"admin":{"heading":"geist-sans","body":"geist-sans"}}`))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Contains(t, readBody(t, resp), "--primary:200 80% 50%!important")
	assert.Zero(t, src.calls)
	assert.Empty(t, resp.Header.Values(fiber.HeaderSetCookie))
}

func TestAppearanceRefreshesCookiesFromStore(t *testing.T) {
	src := &stubSource{color: &models.UserColor{HslH: 10, HslS: 20, HslL: 30}}
	app := appearanceApp(src, uuid.NewString())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/page", nil))
	require.NoError(t, err)

	assert.Contains(t, readBody(t, resp), "--primary:10 20% 30%!important")
	cookies := strings.Join(resp.Header.Values(fiber.HeaderSetCookie), "\n")
	assert.Contains(t, cookies, theme.ColorCookie+"=10%2020%25%2030%25")
	assert.Contains(t, cookies, theme.FontCookie+"=")
	assert.Contains(t, strings.ToLower(cookies), "samesite=lax")
}

func TestAppearanceLeavesJSONAlone(t *testing.T) {
	src := &stubSource{color: &models.UserColor{HslH: 10, HslS: 20, HslL: 30}}
	app := appearanceApp(src, uuid.NewString())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/json", nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true}`, readBody(t, resp))
	assert.Zero(t, src.calls)
}

func sessionApp() *fiber.App {
	app := fiber.New()
	guarded := app.Group("", JWTFromCookie(testSecret), AttachJWTLocals())
	guarded.Get("/admin", func(c *fiber.Ctx) error { return c.SendString("dashboard") })
	guarded.Get("/api/admin/me", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string) + ":" + c.Locals("role").(string))
	})
	guarded.Delete("/api/admin/pages", RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func withSession(t *testing.T, req *http.Request, role string) *http.Request {
	t.Helper()
	tok, err := utils.SignJWT(testSecret, "u-1", role, 5)
	require.NoError(t, err)
	req.Header.Set("Cookie", utils.SessionCookie+"="+tok)
	return req
}

func TestSessionRejectsAnonymous(t *testing.T) {
	app := sessionApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"success":false`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?next=%2Fadmin", resp.Header.Get(fiber.HeaderLocation))
}

func TestSessionRejectsForgedToken(t *testing.T) {
	app := sessionApp()
	tok, err := utils.SignJWT("other-secret", "u-1", "admin", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Cookie", utils.SessionCookie+"="+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionSetsIdentity(t *testing.T) {
	app := sessionApp()

	resp, err := app.Test(withSession(t, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil), "Editor"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-1:editor", readBody(t, resp))
}

func TestRequireRoles(t *testing.T) {
	app := sessionApp()

	resp, err := app.Test(withSession(t, httptest.NewRequest(http.MethodDelete, "/api/admin/pages", nil), "editor"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(withSession(t, httptest.NewRequest(http.MethodDelete, "/api/admin/pages", nil), "admin"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
