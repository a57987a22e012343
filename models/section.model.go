package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Section struct {
	gorm.Model
	CourseID    uint                        `json:"course_id" gorm:"index;not null"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Videos      datatypes.JSONSlice[string] `json:"videos"`
	IsDeleted   bool                        `gorm:"default:false"`
	Chapters    []Chapter                   `json:"chapters,omitempty" gorm:"foreignKey:SectionID"`
}
