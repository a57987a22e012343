package paymentController_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	paymentRoutes "lms/routers/paymentRoutes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "gw-secret",
		UploadDir:         t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	paymentRoutes.SetupPaymentRoutes(app)
	return app
}

func seedUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Learner", Email: email, Password: "x", Role: "USER"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	return user, token
}

func seedCourse(t *testing.T, price uint) models.Course {
	t.Helper()

	course := models.Course{Name: "Go from Scratch", Description: "desc", Price: price}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpayKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp.StatusCode, env
}

func TestVerifyOrderHappyPath(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedUser(t, "buyer@example.com")
	course := seedCourse(t, 499)

	order := models.Order{
		UserID:          user.ID,
		CourseID:        course.ID,
		RazorpayOrderID: "order_test001",
		Amount:          course.Price * 100,
		Currency:        "INR",
		Receipt:         "rcpt_test001",
		Status:          models.OrderCreated,
	}
	require.NoError(t, database.Database.Db.Create(&order).Error)

	paymentID := "pay_test001"
	status, env := postJSON(t, app, "/user/verifyOrder", token, fiber.Map{
		"orderId":   order.RazorpayOrderID,
		"paymentId": paymentID,
		"signature": signPayment(order.RazorpayOrderID, paymentID),
	})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var saved models.Order
	require.NoError(t, database.Database.Db.First(&saved, order.ID).Error)
	assert.Equal(t, models.OrderPaid, saved.Status)
	assert.Equal(t, paymentID, saved.RazorpayPaymentID)

	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = false", user.ID, course.ID).
		Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	// A replayed confirmation finds no CREATED order and cannot enroll twice
	status, _ = postJSON(t, app, "/user/verifyOrder", token, fiber.Map{
		"orderId":   order.RazorpayOrderID,
		"paymentId": paymentID,
		"signature": signPayment(order.RazorpayOrderID, paymentID),
	})
	assert.Equal(t, http.StatusNotFound, status)

	database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)
}

func TestVerifyOrderBadSignature(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedUser(t, "buyer@example.com")
	course := seedCourse(t, 499)

	order := models.Order{
		UserID:          user.ID,
		CourseID:        course.ID,
		RazorpayOrderID: "order_test002",
		Amount:          course.Price * 100,
		Currency:        "INR",
		Receipt:         "rcpt_test002",
		Status:          models.OrderCreated,
	}
	require.NoError(t, database.Database.Db.Create(&order).Error)

	status, env := postJSON(t, app, "/user/verifyOrder", token, fiber.Map{
		"orderId":   order.RazorpayOrderID,
		"paymentId": "pay_test002",
		"signature": "deadbeef",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Payment verification failed!", env.Message)

	var saved models.Order
	require.NoError(t, database.Database.Db.First(&saved, order.ID).Error)
	assert.Equal(t, models.OrderFailed, saved.Status)

	// No enrollment on a failed verification
	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollments)
	assert.Equal(t, int64(0), enrollments)
}

func TestVerifyOrderWrongUser(t *testing.T) {
	app := setupTestApp(t)
	owner, _ := seedUser(t, "owner@example.com")
	_, otherToken := seedUser(t, "other@example.com")
	course := seedCourse(t, 499)

	order := models.Order{
		UserID:          owner.ID,
		CourseID:        course.ID,
		RazorpayOrderID: "order_test003",
		Amount:          course.Price * 100,
		Currency:        "INR",
		Receipt:         "rcpt_test003",
		Status:          models.OrderCreated,
	}
	require.NoError(t, database.Database.Db.Create(&order).Error)

	paymentID := "pay_test003"
	status, _ := postJSON(t, app, "/user/verifyOrder", otherToken, fiber.Map{
		"orderId":   order.RazorpayOrderID,
		"paymentId": paymentID,
		"signature": signPayment(order.RazorpayOrderID, paymentID),
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateOrderAlreadyPurchased(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedUser(t, "buyer@example.com")
	course := seedCourse(t, 499)

	enrollment := models.Enrollment{UserID: user.ID, CourseID: course.ID}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, env := postJSON(t, app, "/user/createOrder", token, fiber.Map{
		"courseId": course.ID,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Course already purchased!", env.Message)
}

func TestCreateOrderUnknownCourse(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedUser(t, "buyer@example.com")

	status, env := postJSON(t, app, "/user/createOrder", token, fiber.Map{
		"courseId": 4242,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}

func TestPaymentRoutesRequireAuth(t *testing.T) {
	app := setupTestApp(t)

	status, env := postJSON(t, app, "/user/createOrder", "", fiber.Map{"courseId": 1})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized!", env.Message)

	status, env = postJSON(t, app, "/user/verifyOrder", "", fiber.Map{
		"orderId":   "order_x",
		"paymentId": "pay_x",
		"signature": "sig",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized!", env.Message)
}
