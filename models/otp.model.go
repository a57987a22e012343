package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores the hashed form of a one-time code. The plaintext code is
// only ever held in memory on its way to the mailer.
type OTP struct {
	gorm.Model
	Email       string    `gorm:"size:100;index;not null" json:"email"`
	CodeHash    string    `gorm:"size:64;not null" json:"-"` // sha256 hex of the 6-digit code
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
}
