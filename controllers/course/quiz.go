package courseController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/validators/courseValidator"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// upsertQuiz replaces whatever quiz the owner currently has with the
// submitted one. Section and chapter routes share this path; there is a
// single quiz format.
func upsertQuiz(db *gorm.DB, ownerType string, ownerID uint, payload *courseValidator.QuizPayload) (*models.Quiz, error) {
	quiz := models.Quiz{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Title:     payload.Title,
		Duration:  payload.Duration,
	}

	for _, q := range payload.Questions {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Question:     q.Question,
			Options:      datatypes.NewJSONSlice(q.Options),
			CorrectIndex: q.CorrectIndex,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var old models.Quiz
		if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).First(&old).Error; err == nil {
			if err := tx.Unscoped().Where("quiz_id = ?", old.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&old).Error; err != nil {
				return err
			}
		}
		return tx.Create(&quiz).Error
	})
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

func AddSectionQuiz(c *fiber.Ctx) error {
	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", sectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	quiz, err := upsertQuiz(db, models.QuizOwnerSection, uint(sectionID), reqData)
	if err != nil {
		log.Printf("Error saving quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz saved successfully.", quiz)
}

func AddChapterQuiz(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	quiz, err := upsertQuiz(db, models.QuizOwnerChapter, uint(chapterID), reqData)
	if err != nil {
		log.Printf("Error saving quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz saved successfully.", quiz)
}

// courseIDForQuizOwner resolves the course a quiz belongs to so access
// can be gated on enrollment.
func courseIDForQuizOwner(db *gorm.DB, ownerType string, ownerID uint) (uint, error) {
	if ownerType == models.QuizOwnerSection {
		var section models.Section
		if err := db.Where("id = ? AND is_deleted = false", ownerID).First(&section).Error; err != nil {
			return 0, err
		}
		return section.CourseID, nil
	}

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = false", ownerID).First(&chapter).Error; err != nil {
		return 0, err
	}
	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", chapter.SectionID).First(&section).Error; err != nil {
		return 0, err
	}
	return section.CourseID, nil
}

// loadQuizForUser resolves the quiz behind an enrollment-gated route.
// A nil quiz means the request failed; the status and message describe
// the reply the caller must write.
func loadQuizForUser(c *fiber.Ctx, ownerType string) (*models.Quiz, int, string) {
	ownerID, err := c.ParamsInt("id")
	if err != nil || ownerID < 1 {
		return nil, fiber.StatusBadRequest, "Invalid id!"
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, fiber.StatusUnauthorized, "Unauthorized!"
	}

	db := database.Database.Db

	courseID, err := courseIDForQuizOwner(db, ownerType, uint(ownerID))
	if err != nil {
		return nil, fiber.StatusNotFound, "Quiz not found!"
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).First(&enrollment).Error; err != nil {
		return nil, fiber.StatusForbidden, "Course not purchased!"
	}

	var quiz models.Quiz
	if err := db.Where("owner_type = ? AND owner_id = ? AND is_deleted = false", ownerType, ownerID).
		Preload("Questions", "is_deleted = false").
		First(&quiz).Error; err != nil {
		return nil, fiber.StatusNotFound, "Quiz not found!"
	}

	return &quiz, fiber.StatusOK, ""
}

// quizView strips correct indexes before a quiz goes to a learner
func quizView(quiz *models.Quiz) fiber.Map {
	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"options":  q.Options,
		})
	}

	return fiber.Map{
		"id":        quiz.ID,
		"title":     quiz.Title,
		"duration":  quiz.Duration,
		"questions": questions,
	}
}

func GetSectionQuiz(c *fiber.Ctx) error {
	quiz, status, message := loadQuizForUser(c, models.QuizOwnerSection)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", quizView(quiz))
}

func GetChapterQuiz(c *fiber.Ctx) error {
	quiz, status, message := loadQuizForUser(c, models.QuizOwnerChapter)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", quizView(quiz))
}

// GradeQuiz scores a submission against the stored questions. An answer
// counts only when its chosen index equals the stored correct index;
// unknown question ids score nothing and each question counts at most
// once no matter how often it appears in the submission.
func GradeQuiz(questions []models.QuizQuestion, submission *courseValidator.QuizSubmission) (score int, total int) {
	correct := make(map[uint]int, len(questions))
	for _, q := range questions {
		correct[q.ID] = q.CorrectIndex
	}

	for _, a := range submission.Answers {
		idx, ok := correct[a.QuestionID]
		if !ok {
			continue
		}
		delete(correct, a.QuestionID)
		if idx == a.ChosenIndex {
			score++
		}
	}

	return score, len(questions)
}

func submitQuiz(c *fiber.Ctx, ownerType string) error {
	quiz, status, message := loadQuizForUser(c, ownerType)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*courseValidator.QuizSubmission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	score, total := GradeQuiz(quiz.Questions, reqData)

	answersJSON, _ := json.Marshal(reqData.Answers)

	attempt := models.QuizAttempt{
		UserID:  userID,
		QuizID:  quiz.ID,
		Answers: datatypes.JSON(answersJSON),
		Score:   score,
		Total:   total,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully.", fiber.Map{
		"attemptId": attempt.ID,
		"score":     score,
		"total":     total,
	})
}

func SubmitSectionQuiz(c *fiber.Ctx) error {
	return submitQuiz(c, models.QuizOwnerSection)
}

func SubmitChapterQuiz(c *fiber.Ctx) error {
	return submitQuiz(c, models.QuizOwnerChapter)
}
