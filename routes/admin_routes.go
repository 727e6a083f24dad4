package routes

import (
	"github.com/babydan/binary_backend/handlers"
	"github.com/babydan/binary_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Post("/settle/:id", handlers.AdminSettlePairing)
	admin.Post("/earnings-cap/run", handlers.AdminRunEarningsCapSweep)
}
