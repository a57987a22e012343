package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/validators/courseValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	// Catalogue is public
	userGroup.Get("/getAllCourses", courseController.GetAllCourses)
	userGroup.Get("/getCourse/:id", courseController.GetCourseDetails)

	userGroup.Get("/purchasedCourses", middleware.JWTMiddleware, courseController.GetPurchasedCourses)

	// Quizzes, gated on enrollment inside the controllers
	userGroup.Get("/sectionQuiz/:id", middleware.JWTMiddleware, courseController.GetSectionQuiz)
	userGroup.Get("/chapterQuiz/:id", middleware.JWTMiddleware, courseController.GetChapterQuiz)
	userGroup.Post("/submitSectionQuiz/:id", middleware.JWTMiddleware, courseValidator.SubmitQuiz(), courseController.SubmitSectionQuiz)
	userGroup.Post("/submitChapterQuiz/:id", middleware.JWTMiddleware, courseValidator.SubmitQuiz(), courseController.SubmitChapterQuiz)
}
