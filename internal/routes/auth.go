package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/handlers"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/middleware"
)

func registerAuthRoutes(app *fiber.App, d Deps) {
	authH := handlers.NewAuthHandler(d.Store, d.Config)

	// before the /admin group so the login page stays public
	app.Get("/admin/login", authH.LoginPage)

	auth := app.Group("/api/auth")
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me",
		middleware.JWTFromCookie(d.Config.JWTSecret),
		middleware.AttachJWTLocals(),
		authH.Me,
	)

	if d.Config.GoogleEnabled() {
		googleH := handlers.NewGoogleOAuthHandler(authH, d.Config)
		auth.Get("/google/start", googleH.GoogleStart)
		auth.Get("/google/callback", googleH.GoogleCallback)
	}
}
