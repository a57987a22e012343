package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz owner kinds. A quiz hangs off either a section or a chapter; the
// owner carries no back-reference to it.
const (
	QuizOwnerSection = "SECTION"
	QuizOwnerChapter = "CHAPTER"
)

type Quiz struct {
	gorm.Model
	OwnerType string         `json:"owner_type" gorm:"size:10;index:idx_quiz_owner;not null"`
	OwnerID   uint           `json:"owner_id" gorm:"index:idx_quiz_owner;not null"`
	Title     string         `json:"title"`
	Duration  int            `json:"duration" gorm:"default:0"` // minutes, 0 = untimed
	IsDeleted bool           `gorm:"default:false"`
	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID       uint                        `json:"quiz_id" gorm:"index;not null"`
	Question     string                      `json:"question" gorm:"type:text"`
	Options      datatypes.JSONSlice[string] `json:"options"`
	CorrectIndex int                         `json:"correct_index"`
	IsDeleted    bool                        `gorm:"default:false"`
}

// QuizAttempt keeps the full submitted answer payload alongside the
// server-derived score.
type QuizAttempt struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	QuizID    uint           `json:"quiz_id" gorm:"index;not null"`
	Answers   datatypes.JSON `json:"answers"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	IsDeleted bool           `gorm:"default:false"`
}
