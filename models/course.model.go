package models

import "gorm.io/gorm"

// Course is the top level content unit. Price is in rupees; the payment
// gateway is charged price x 100 minor units.
type Course struct {
	gorm.Model
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description" gorm:"type:text"`
	Price           uint      `json:"price" gorm:"default:0"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	IntroURL        string    `json:"intro_url"`
	IsDeleted       bool      `gorm:"default:false"`
	Sections        []Section `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
}
