package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeCleanupScheduler starts the background sweeps: expired OTP
// rows are purged every 5 minutes (this is what closes the verification
// window for codes that are never redeemed) and orders stuck in CREATED
// for more than a day are failed hourly.
func InitializeCleanupScheduler() {
	c := cron.New()

	c.AddFunc("*/5 * * * *", PurgeExpiredOTPs)
	c.AddFunc("0 * * * *", ExpireStaleOrders)

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] Started OTP purge and order reconciliation jobs")
}

// PurgeExpiredOTPs hard-deletes OTP rows past their expiry
func PurgeExpiredOTPs() {
	db := database.Database.Db

	result := db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.OTP{})
	if result.Error != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error purging expired OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Purged %d expired OTP(s)", result.RowsAffected)
	}
}

// ExpireStaleOrders fails abandoned checkouts
func ExpireStaleOrders() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderCreated, cutoff).
		Update("status", models.OrderFailed)
	if result.Error != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error expiring stale orders: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Marked %d abandoned order(s) as FAILED", result.RowsAffected)
	}
}
