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

func AddChapter(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChapter").(*struct {
		SectionID   uint   `json:"sectionId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Summary     string `json:"summary"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = false", reqData.SectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	chapter := models.Chapter{
		SectionID:   reqData.SectionID,
		Name:        reqData.Name,
		Description: reqData.Description,
		Summary:     reqData.Summary,
	}

	if err := db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully.", chapter)
}

func EditChapter(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	reqData, ok := c.Locals("validatedChapterEdit").(*struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Summary     *string `json:"summary"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if reqData.Name != nil {
		chapter.Name = *reqData.Name
	}
	if reqData.Description != nil {
		chapter.Description = *reqData.Description
	}
	if reqData.Summary != nil {
		chapter.Summary = *reqData.Summary
	}

	if err := db.Save(&chapter).Error; err != nil {
		log.Printf("Error updating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully.", chapter)
}

// DeleteChapter removes one chapter and its quiz; the parent section is
// untouched.
func DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quiz{}).
			Where("owner_type = ? AND owner_id = ?", models.QuizOwnerChapter, chapterID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&chapter).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully.", nil)
}

// AddChapterFile uploads an attachment and appends its URL
func AddChapterFile(c *fiber.Ctx) error {
	return addChapterMedia(c, "file", "files")
}

// AddChapterVideo uploads a video and appends its URL
func AddChapterVideo(c *fiber.Ctx) error {
	return addChapterMedia(c, "video", "videos")
}

func addChapterMedia(c *fiber.Ctx, field, subDir string) error {
	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	upload, err := c.FormFile(field)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Upload file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(upload, subDir)
	if err != nil {
		log.Printf("Error saving upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save upload!", nil)
	}

	url := utils.GetFileURL(path)
	if field == "video" {
		chapter.Videos = append(chapter.Videos, url)
	} else {
		chapter.Files = append(chapter.Files, url)
	}

	if err := db.Save(&chapter).Error; err != nil {
		log.Printf("Error updating chapter media: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach upload!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload added successfully.", chapter)
}
