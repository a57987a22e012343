package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	"lms/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
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
		JWTKey:      "test-secret",
		SaltRound:   4,
		EmailSender: "noreply@example.com",
		Password:    "unused",
		UploadDir:   t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep the in-memory database on one connection

	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp.StatusCode, env
}

func seedOTP(t *testing.T, email, code string, expiresAt time.Time) {
	t.Helper()

	record := models.OTP{
		Email:     email,
		CodeHash:  utils.HashOTP(code),
		ExpiresAt: expiresAt,
	}
	require.NoError(t, database.Database.Db.Create(&record).Error)
}

func TestSendOTPStoresOnlyHash(t *testing.T) {
	app := setupTestApp(t)

	status, env := postJSON(t, app, "/user/sendOTP", fiber.Map{"email": "new@example.com"})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var records []models.OTP
	require.NoError(t, database.Database.Db.Where("email = ?", "new@example.com").Find(&records).Error)
	require.Len(t, records, 1)
	assert.Len(t, records[0].CodeHash, 64)
	assert.True(t, records[0].ExpiresAt.After(time.Now()))

	// A second request replaces the pending code instead of stacking
	status, _ = postJSON(t, app, "/user/sendOTP", fiber.Map{"email": "new@example.com"})
	assert.Equal(t, http.StatusOK, status)

	require.NoError(t, database.Database.Db.Where("email = ?", "new@example.com").Find(&records).Error)
	assert.Len(t, records, 1)
}

func TestOTPRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	email := "learner@example.com"
	code := "123456"
	seedOTP(t, email, code, time.Now().Add(5*time.Minute))

	body := fiber.Map{
		"email":    email,
		"code":     code,
		"name":     "Learner",
		"password": "supersafe1",
	}

	status, env := postJSON(t, app, "/user/verifyOTPandRegister", body)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)

	// The OTP is consumed on success
	var count int64
	database.Database.Db.Model(&models.OTP{}).Where("email = ?", email).Count(&count)
	assert.Equal(t, int64(0), count)

	// Replaying the same code cannot succeed
	status, env = postJSON(t, app, "/user/verifyOTPandRegister", body)
	assert.NotEqual(t, http.StatusCreated, status)
	assert.False(t, env.Success)

	// Exactly one user was created
	var users int64
	database.Database.Db.Model(&models.User{}).Where("email = ?", email).Count(&users)
	assert.Equal(t, int64(1), users)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	app := setupTestApp(t)

	email := "learner@example.com"
	seedOTP(t, email, "123456", time.Now().Add(5*time.Minute))

	status, env := postJSON(t, app, "/user/verifyOTPandRegister", fiber.Map{
		"email":    email,
		"code":     "654321",
		"name":     "Learner",
		"password": "supersafe1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid or expired OTP!", env.Message)
}

func TestVerifyOTPExpired(t *testing.T) {
	app := setupTestApp(t)

	email := "late@example.com"
	code := "123456"
	seedOTP(t, email, code, time.Now().Add(-time.Minute))

	status, env := postJSON(t, app, "/user/verifyOTPandRegister", fiber.Map{
		"email":    email,
		"code":     code,
		"name":     "Late",
		"password": "supersafe1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	// The expired failure reads the same as a wrong code
	assert.Equal(t, "Invalid or expired OTP!", env.Message)
}

func TestLoginRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	email := "learner@example.com"
	code := "123456"
	seedOTP(t, email, code, time.Now().Add(5*time.Minute))

	status, _ := postJSON(t, app, "/user/verifyOTPandRegister", fiber.Map{
		"email":    email,
		"code":     code,
		"name":     "Learner",
		"password": "supersafe1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := postJSON(t, app, "/user/login", fiber.Map{
		"email":    email,
		"password": "supersafe1",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = postJSON(t, app, "/user/login", fiber.Map{
		"email":    email,
		"password": "wrongpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestResetPasswordRejectsMalformedClaims(t *testing.T) {
	app := setupTestApp(t)

	// Validly signed token whose userId claim is not a number
	claims := jwt.MapClaims{
		"userId": "not-a-number",
		"email":  "learner@example.com",
		"role":   "USER",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	payload, err := json.Marshal(fiber.Map{"password": "freshpass1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/user/resetPassword", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized!", env.Message)
}
