package authController

import (
	"lms/database"
	"lms/models"
	"lms/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestConsumeOTPFailedDeleteKeepsCodeUnspent(t *testing.T) {
	db := openTestDB(t)

	email := "learner@example.com"
	code := "123456"
	require.NoError(t, db.Create(&models.OTP{
		Email:     email,
		CodeHash:  utils.HashOTP(code),
		ExpiresAt: time.Now().Add(otpValidity),
	}).Error)

	// Writes fail while the session is read only, so the row cannot be
	// deleted; the consume must not report success then.
	require.NoError(t, db.Exec("PRAGMA query_only = ON").Error)
	assert.False(t, consumeOTP(db, email, code))

	require.NoError(t, db.Exec("PRAGMA query_only = OFF").Error)

	var count int64
	db.Model(&models.OTP{}).Where("email = ?", email).Count(&count)
	assert.Equal(t, int64(1), count)

	// Once writes work again the same code consumes normally, exactly once
	assert.True(t, consumeOTP(db, email, code))
	assert.False(t, consumeOTP(db, email, code))
}

func TestConsumeOTPExpired(t *testing.T) {
	db := openTestDB(t)

	email := "late@example.com"
	code := "654321"
	require.NoError(t, db.Create(&models.OTP{
		Email:     email,
		CodeHash:  utils.HashOTP(code),
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	assert.False(t, consumeOTP(db, email, code))
}
