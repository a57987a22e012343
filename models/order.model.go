package models

import "gorm.io/gorm"

// Order statuses. CREATED moves to PAID on a verified payment or to
// FAILED on a bad signature / reconciliation sweep.
const (
	OrderCreated = "CREATED"
	OrderPaid    = "PAID"
	OrderFailed  = "FAILED"
)

type Order struct {
	gorm.Model
	UserID            uint   `json:"user_id" gorm:"index;not null"`
	CourseID          uint   `json:"course_id" gorm:"index;not null"`
	RazorpayOrderID   string `json:"razorpay_order_id" gorm:"size:100;uniqueIndex"`
	RazorpayPaymentID string `json:"razorpay_payment_id" gorm:"size:100"`
	RazorpaySignature string `json:"-" gorm:"size:128"`
	Amount            uint   `json:"amount" gorm:"not null"` // minor units (paise)
	Currency          string `json:"currency" gorm:"size:10;default:'INR'"`
	Receipt           string `json:"receipt" gorm:"size:64"`
	Status            string `json:"status" gorm:"size:20;default:'CREATED'"`
	IsDeleted         bool   `gorm:"default:false"`
	User              User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course            Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
