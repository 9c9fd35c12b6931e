package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/testutil"
)

type failBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// pagesWithoutSlugCheck mounts the pages resource with the slug lookup
// skipped, so the insert is what meets the taken slug, as it does when a
// concurrent create wins between check and write.
func pagesWithoutSlugCheck(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	s := store.New(testutil.SetupTestDB(t))
	r, ok := (&ContentHandler{Store: s}).pages().(*resource[models.Page, pageInput])
	require.True(t, ok)
	r.refs = nil

	app := fiber.New()
	app.Post("/pages", r.Create)
	app.Put("/pages/:id", r.Update)
	return app, s
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, failBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out failBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreatePageSlugTakenAtInsert(t *testing.T) {
	app, s := pagesWithoutSlugCheck(t)
	require.NoError(t, s.CreatePage(t.Context(), &models.Page{Slug: "pricing", Title: "Pricing"}))

	status, out := send(t, app, http.MethodPost, "/pages", `{"slug":"pricing","title":"Pricing 2"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, out.Success)
	assert.Equal(t, []string{"slug is already in use"}, out.Errors["slug"])
}

func TestUpdatePageSlugTakenAtWrite(t *testing.T) {
	app, s := pagesWithoutSlugCheck(t)
	ctx := t.Context()
	require.NoError(t, s.CreatePage(ctx, &models.Page{Slug: "pricing", Title: "Pricing"}))
	about := &models.Page{Slug: "about", Title: "About"}
	require.NoError(t, s.CreatePage(ctx, about))

	status, out := send(t, app, http.MethodPut, "/pages/"+about.ID.String(), `{"slug":"pricing"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, []string{"slug is already in use"}, out.Errors["slug"])
}
