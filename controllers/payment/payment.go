package paymentController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrder opens a hosted order on the payment gateway for a course
// the caller does not own yet and records it locally as CREATED.
func CreateOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateOrder").(*struct {
		CourseID uint `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// One enrollment per course
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already purchased!", nil)
	}

	amount := course.Price * 100 // gateway wants minor units
	receipt := "rcpt_" + uuid.NewString()[:18]

	gatewayOrder, err := utils.CreateGatewayOrder(amount, receipt)
	if err != nil {
		log.Printf("Error creating gateway order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	order := models.Order{
		UserID:          userID,
		CourseID:        reqData.CourseID,
		RazorpayOrderID: gatewayOrder.ID,
		Amount:          amount,
		Currency:        "INR",
		Receipt:         receipt,
		Status:          models.OrderCreated,
	}

	if err := db.Create(&order).Error; err != nil {
		log.Printf("Error saving order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order created successfully.", fiber.Map{
		"orderId":  order.RazorpayOrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    config.AppConfig.RazorpayKeyID,
	})
}

// VerifyOrder checks the client-submitted payment confirmation against
// a recomputed HMAC and, on match, marks the order PAID and enrolls the
// user in one transaction. A bad signature fails the order.
func VerifyOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVerifyOrder").(*struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.Where("razorpay_order_id = ? AND user_id = ? AND status = ? AND is_deleted = false",
		reqData.OrderID, userID, models.OrderCreated).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if !utils.VerifyPaymentSignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		order.Status = models.OrderFailed
		order.RazorpayPaymentID = reqData.PaymentID
		if err := db.Save(&order).Error; err != nil {
			log.Printf("Error failing order: %v", err)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order.Status = models.OrderPaid
		order.RazorpayPaymentID = reqData.PaymentID
		order.RazorpaySignature = reqData.Signature
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		// Re-check inside the transaction so a double verify cannot
		// duplicate the enrollment
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, order.CourseID).First(&existing).Error; err == nil {
			return nil
		}

		enrollment := models.Enrollment{
			UserID:   userID,
			CourseID: order.CourseID,
			OrderID:  order.ID,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		log.Printf("Error completing order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete purchase!", nil)
	}

	// Confirmation email, best effort
	var user models.User
	var course models.Course
	if db.First(&user, userID).Error == nil && db.First(&course, order.CourseID).Error == nil {
		utils.SendPurchaseEmail(user.Email, user.Name, course.Name)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified, course unlocked.", fiber.Map{
		"orderId":  order.RazorpayOrderID,
		"courseId": order.CourseID,
		"status":   order.Status,
	})
}

// GetMyOrders returns the caller's order history
func GetMyOrders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var orders []models.Order
	if err := db.Where("user_id = ? AND is_deleted = false", userID).
		Preload("Course").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully.", orders)
}

// AdminGetOrders lists all orders with pagination
func AdminGetOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Order{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Course").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully.", fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
