package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func AddSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"courseId"`
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

func EditSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title must be at least 3 characters long!",
			})
		}

		c.Locals("validatedSectionEdit", reqData)
		return c.Next()
	}
}

func AddChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SectionID   uint   `json:"sectionId"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Summary     string `json:"summary"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SectionID == 0 {
			errors["sectionId"] = "Section id is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func EditChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Summary     *string `json:"summary"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Name cannot be empty!",
			})
		}

		c.Locals("validatedChapterEdit", reqData)
		return c.Next()
	}
}

// QuizPayload is the single add-quiz format shared by section and
// chapter routes.
type QuizPayload struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Questions []struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correctIndex"`
	} `json:"questions"`
}

func AddQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}
		for _, q := range reqData.Questions {
			if strings.TrimSpace(q.Question) == "" {
				errors["questions"] = "Every question needs text!"
				break
			}
			if len(q.Options) < 2 {
				errors["questions"] = "Every question needs at least two options!"
				break
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				errors["questions"] = "Correct index out of range!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// QuizSubmission carries only question ids and chosen option indexes;
// correctness is derived server side.
type QuizAnswer struct {
	QuestionID  uint `json:"questionId"`
	ChosenIndex int  `json:"chosenIndex"`
}

type QuizSubmission struct {
	Answers []QuizAnswer `json:"answers"`
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizSubmission)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, a := range reqData.Answers {
			if a.QuestionID == 0 {
				errors["answers"] = "Every answer needs a question id!"
				break
			}
			if a.ChosenIndex < 0 {
				errors["answers"] = "Chosen index cannot be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
