package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	"lms/validators/authValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Post("/sendOTP", authValidator.SendOTP(), authController.SendOTP)
	userGroup.Post("/verifyOTPandRegister", authValidator.VerifyOTPRegister(), authController.VerifyOTPAndRegister)
	userGroup.Post("/login", authValidator.Login(), authController.Login)
	userGroup.Post("/forgotPassword/sendOTP", authValidator.SendOTP(), authController.ForgotPasswordSendOTP)
	userGroup.Post("/forgotPassword/verifyOTP", authValidator.VerifyResetOTP(), authController.ForgotPasswordVerifyOTP)
	userGroup.Patch("/resetPassword", authValidator.ResetPassword(), middleware.JWTMiddleware, authController.ResetPassword)
}
