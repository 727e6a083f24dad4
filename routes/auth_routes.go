package routes

import (
	"github.com/babydan/binary_backend/handlers"
	"github.com/babydan/binary_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/signup", handlers.SignUp)
	api.Get("/auth/nonce/:walletAddress", handlers.GetNonce)
	api.Post("/auth/wallet-login", handlers.WalletLogin)
	api.Get("/auth/verify", middleware.Protected(), handlers.VerifyAuth)
}
