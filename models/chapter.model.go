package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Chapter struct {
	gorm.Model
	SectionID   uint                        `json:"section_id" gorm:"index;not null"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Summary     string                      `json:"summary" gorm:"type:text"`
	Files       datatypes.JSONSlice[string] `json:"files"`
	Videos      datatypes.JSONSlice[string] `json:"videos"`
	IsDeleted   bool                        `gorm:"default:false"`
}
