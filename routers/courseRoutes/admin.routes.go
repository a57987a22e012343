package courseRoutes

import (
	courseController "lms/controllers/course"
	paymentController "lms/controllers/payment"
	"lms/middleware"
	"lms/validators/courseValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin content management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.AdminMiddleware)

	// Course CRUD (addCourse is multipart, validated in the controller)
	adminGroup.Post("/addCourse", courseController.AddCourse)
	adminGroup.Put("/editCourse/:id", courseController.EditCourse)
	adminGroup.Delete("/deleteCourse/:id", courseController.DeleteCourse)

	// Sections
	adminGroup.Post("/addSection", courseValidator.AddSection(), courseController.AddSection)
	adminGroup.Put("/editSection/:id", courseValidator.EditSection(), courseController.EditSection)
	adminGroup.Delete("/deleteSection/:id", courseController.DeleteSection)
	adminGroup.Post("/addSectionVideo/:id", courseController.AddSectionVideo)

	// Chapters
	adminGroup.Post("/addChapter", courseValidator.AddChapter(), courseController.AddChapter)
	adminGroup.Put("/editChapter/:id", courseValidator.EditChapter(), courseController.EditChapter)
	adminGroup.Delete("/deleteChapter/:id", courseController.DeleteChapter)
	adminGroup.Post("/addChapterFile/:id", courseController.AddChapterFile)
	adminGroup.Post("/addChapterVideo/:id", courseController.AddChapterVideo)

	// Quizzes, one shared format for both owners
	adminGroup.Post("/addSectionQuiz/:id", courseValidator.AddQuiz(), courseController.AddSectionQuiz)
	adminGroup.Post("/addChapterQuiz/:id", courseValidator.AddQuiz(), courseController.AddChapterQuiz)

	// Orders overview
	adminGroup.Get("/orders", paymentController.AdminGetOrders)
}
