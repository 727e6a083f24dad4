package routes

import (
	"github.com/babydan/binary_backend/handlers"
	"github.com/babydan/binary_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func WalletRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Protected())

	api.Get("/wallet/balance", handlers.GetBalance)
	api.Post("/deposit", handlers.CreateDeposit)
	api.Get("/deposit/history", handlers.GetDepositHistory)
	api.Post("/withdraw", handlers.CreateWithdraw)
	api.Post("/transfer", handlers.CreateTransfer)
	api.Get("/history", handlers.GetHistory)
}
