package routes

import (
	"github.com/babydan/binary_backend/handlers"
	"github.com/babydan/binary_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Protected())

	api.Get("/dashboard", handlers.GetDashboard)
	api.Get("/profile", handlers.GetProfile)
	api.Get("/team", handlers.GetTeam)
	api.Get("/referrals", handlers.ListReferrals)
	api.Get("/ref-link", handlers.GetRefLink)
}
