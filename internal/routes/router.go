package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/config"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/handlers"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/middleware"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/realtime"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/render"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/upload"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/theme"
)

// Deps is everything the HTTP layer needs. Relay and Files stay nil when the
// CDN is not configured; Live may be nil to skip the live feed.
type Deps struct {
	Config config.Config
	Store  *store.Store
	Views  fiber.Views
	Hub    *realtime.Hub
	Live   realtime.Publisher
	Relay  *upload.Relay
	Files  handlers.Mover
	// Quiet drops the request logger, for tests.
	Quiet bool
}

// NewApp builds the fiber app with every route registered.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 d.Views,
		BodyLimit:             int(d.Config.UploadMaxBytes) + 1<<20,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	SetupRoutes(app, d)
	return app
}

// SetupRoutes registers the global middleware and every route group.
func SetupRoutes(app *fiber.App, d Deps) {
	app.Use(recoverMiddleware.New())
	if !d.Quiet {
		app.Use(logger.New())
	}
	app.Use(middleware.OptionalJWT(d.Config.JWTSecret))
	app.Use(middleware.Appearance(theme.NewResolver(d.Store), d.Config.SecureCookies))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	adminPages := &handlers.AdminPages{Store: d.Store}
	content := &handlers.ContentHandler{Store: d.Store, Admin: adminPages}
	resources := content.Resources()
	for _, r := range resources {
		adminPages.Nav = append(adminPages.Nav, r.Entity())
	}

	registerPublicRoutes(app, d)
	registerAuthRoutes(app, d)
	registerAdminRoutes(app, d, adminPages, resources)

	app.Use(notFoundHandler)
}

func registerPublicRoutes(app *fiber.App, d Deps) {
	pub := &handlers.PublicHandler{
		Pages:    render.NewAssembler(d.Store, d.Views),
		HomeSlug: d.Config.HomeSlug,
	}
	analyticsH := &handlers.AnalyticsHandler{Store: d.Store, Live: d.Live}

	app.Get("/", pub.Home)
	app.Get("/p/:slug", pub.Page)
	app.Post("/api/analytics", analyticsH.Track)
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	} else {
		logging.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		if isAPI(c) {
			msg = err.Error()
		}
	}

	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"success": false, "message": msg})
	}
	if code == fiber.StatusNotFound {
		return c.Status(code).Render("errors/404", fiber.Map{"Title": "Page not found"}, "layouts/public")
	}
	return c.Status(code).SendString(msg)
}

func notFoundHandler(c *fiber.Ctx) error {
	if isAPI(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	}
	switch c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) {
	case fiber.MIMEApplicationJSON:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Page not found"}, "layouts/public")
	}
}
