package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AddCourse creates a course from a multipart form: text fields plus
// optional thumbnail and intro uploads.
func AddCourse(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	description := c.FormValue("description")
	longDescription := c.FormValue("longDescription")
	priceStr := c.FormValue("price")

	errors := make(map[string]string)

	if len(name) < 3 {
		errors["name"] = "Name must be at least 3 characters long!"
	}

	price, err := strconv.ParseUint(priceStr, 10, 32)
	if err != nil {
		errors["price"] = "Price must be a non-negative number!"
	}

	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	course := models.Course{
		Name:            name,
		Description:     description,
		LongDescription: longDescription,
		Price:           uint(price),
	}

	// Media uploads are optional at creation time
	if thumb, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUploadedFile(thumb, "thumbnails")
		if err != nil {
			log.Printf("Error saving thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		course.ThumbnailURL = utils.GetFileURL(path)
	}

	if intro, err := c.FormFile("intro"); err == nil {
		path, err := utils.SaveUploadedFile(intro, "intros")
		if err != nil {
			log.Printf("Error saving intro: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save intro!", nil)
		}
		course.IntroURL = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// EditCourse applies a partial update
func EditCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData := new(struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		LongDescription *string `json:"longDescription"`
		Price           *uint   `json:"price"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Name != nil {
		course.Name = *reqData.Name
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.LongDescription != nil {
		course.LongDescription = *reqData.LongDescription
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// DeleteCourse soft-deletes the course only; sections keep their rows
// and are filtered by the course flag on read.
func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}
