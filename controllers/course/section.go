package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AddSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSection").(*struct {
		CourseID    uint   `json:"courseId"`
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	section := models.Section{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := db.Create(&section).Error; err != nil {
		log.Printf("Error creating section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully.", section)
}

func EditSection(c *fiber.Ctx) error {
	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	reqData, ok := c.Locals("validatedSectionEdit").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", sectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if reqData.Title != nil {
		section.Title = *reqData.Title
	}
	if reqData.Description != nil {
		section.Description = *reqData.Description
	}

	if err := db.Save(&section).Error; err != nil {
		log.Printf("Error updating section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully.", section)
}

// DeleteSection removes a section, all of its chapters and any quizzes
// hanging off either, in one transaction so a crash cannot leave a
// half-cascaded tree.
func DeleteSection(c *fiber.Ctx) error {
	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", sectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).
			Where("section_id = ? AND is_deleted = false", sectionID).
			Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		if len(chapterIDs) > 0 {
			if err := tx.Model(&models.Chapter{}).
				Where("id IN ?", chapterIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Quiz{}).
				Where("owner_type = ? AND owner_id IN ?", models.QuizOwnerChapter, chapterIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Quiz{}).
			Where("owner_type = ? AND owner_id = ?", models.QuizOwnerSection, sectionID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		return tx.Model(&section).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section and its chapters deleted successfully.", nil)
}

// AddSectionVideo uploads a video and appends its URL to the section
func AddSectionVideo(c *fiber.Ctx) error {
	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", sectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	video, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(video, "videos")
	if err != nil {
		log.Printf("Error saving video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video!", nil)
	}

	section.Videos = append(section.Videos, utils.GetFileURL(path))
	if err := db.Save(&section).Error; err != nil {
		log.Printf("Error updating section videos: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video added successfully.", section)
}
