package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/handlers"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/middleware"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

func registerAdminRoutes(app *fiber.App, d Deps, pages *handlers.AdminPages, resources []handlers.Resource) {
	session := []fiber.Handler{
		middleware.JWTFromCookie(d.Config.JWTSecret),
		middleware.AttachJWTLocals(),
	}

	admin := app.Group("/admin", session...)
	api := app.Group("/api/admin", session...)

	admin.Get("/", pages.Dashboard(resources))

	for _, r := range resources {
		e := r.Entity()
		base := "/" + e.Key

		api.Get(base, r.List)
		api.Post(base, r.Create)
		if e.Table != "" {
			api.Put(base+"/reorder", r.Reorder)
		}
		api.Get(base+"/:id", r.Get)
		api.Put(base+"/:id", r.Update)
		if e.Key == "pages" {
			// removing a page takes every section and child row with it
			api.Delete(base+"/:id", middleware.RequireRoles(string(models.RoleAdmin)), r.Delete)
		} else {
			api.Delete(base+"/:id", r.Delete)
		}

		admin.Get(base, r.ListPage)
		admin.Get(base+"/new", r.FormPage)
		admin.Get(base+"/:id/edit", r.FormPage)
	}

	appearanceH := &handlers.AppearanceHandler{Store: d.Store, Admin: pages, Secure: d.Config.SecureCookies}
	api.Get("/appearance", appearanceH.Get)
	api.Put("/appearance", appearanceH.Save)
	api.Get("/colors", appearanceH.ListColors)
	api.Post("/colors", appearanceH.CreateColor)
	api.Put("/colors/:id", appearanceH.UpdateColor)
	api.Delete("/colors/:id", appearanceH.DeleteColor)
	admin.Get("/settings", appearanceH.SettingsPage)

	analyticsH := &handlers.AnalyticsHandler{Store: d.Store, Live: d.Live, Admin: pages}
	api.Get("/analytics", analyticsH.List)
	admin.Get("/analytics", analyticsH.Page)

	uploadH := &handlers.UploadHandler{Relay: d.Relay, Files: d.Files}
	api.Post("/upload", uploadH.Upload)
	api.Post("/upload/move", uploadH.Move)
	api.Post("/upload/trash", uploadH.Trash)

	if d.Hub != nil {
		liveH := &handlers.LiveHandler{Hub: d.Hub}
		app.Get("/ws/admin/analytics", append(session, liveH.Upgrade, websocket.New(liveH.Feed))...)
	}
}
