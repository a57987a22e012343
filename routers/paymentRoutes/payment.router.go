package paymentRoutes

import (
	paymentController "lms/controllers/payment"
	"lms/middleware"
	"lms/validators/paymentValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Post("/createOrder", middleware.JWTMiddleware, paymentValidator.CreateOrder(), paymentController.CreateOrder)
	userGroup.Post("/verifyOrder", middleware.JWTMiddleware, paymentValidator.VerifyOrder(), paymentController.VerifyOrder)
	userGroup.Get("/orders", middleware.JWTMiddleware, paymentController.GetMyOrders)
}
