package routes

import (
	"github.com/babydan/binary_backend/handlers"
	"github.com/babydan/binary_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func PackageRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/packages", handlers.ListPackages)

	protected := api.Group("", middleware.Protected())
	protected.Post("/buy-package", handlers.BuyPackage)
	protected.Get("/investments", handlers.ListInvestments)
}
