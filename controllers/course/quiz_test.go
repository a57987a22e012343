package courseController

import (
	"lms/models"
	"lms/validators/courseValidator"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func question(id uint, correct int) models.QuizQuestion {
	return models.QuizQuestion{
		Model:        gorm.Model{ID: id},
		Question:     "q",
		Options:      datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
		CorrectIndex: correct,
	}
}

func TestGradeQuiz(t *testing.T) {
	questions := []models.QuizQuestion{
		question(1, 0),
		question(2, 2),
		question(3, 1),
		question(4, 3),
	}

	tests := []struct {
		name      string
		answers   []courseValidator.QuizAnswer
		wantScore int
	}{
		{
			name: "all correct",
			answers: []courseValidator.QuizAnswer{
				{QuestionID: 1, ChosenIndex: 0},
				{QuestionID: 2, ChosenIndex: 2},
				{QuestionID: 3, ChosenIndex: 1},
				{QuestionID: 4, ChosenIndex: 3},
			},
			wantScore: 4,
		},
		{
			name: "partial",
			answers: []courseValidator.QuizAnswer{
				{QuestionID: 1, ChosenIndex: 0},
				{QuestionID: 2, ChosenIndex: 0},
				{QuestionID: 3, ChosenIndex: 1},
			},
			wantScore: 2,
		},
		{
			name: "all wrong",
			answers: []courseValidator.QuizAnswer{
				{QuestionID: 1, ChosenIndex: 1},
				{QuestionID: 2, ChosenIndex: 1},
				{QuestionID: 3, ChosenIndex: 0},
				{QuestionID: 4, ChosenIndex: 0},
			},
			wantScore: 0,
		},
		{
			name: "unknown question ids score nothing",
			answers: []courseValidator.QuizAnswer{
				{QuestionID: 99, ChosenIndex: 0},
				{QuestionID: 1, ChosenIndex: 0},
			},
			wantScore: 1,
		},
		{
			name:      "empty submission",
			answers:   nil,
			wantScore: 0,
		},
		{
			name: "client cannot claim correctness by repeating an id",
			answers: []courseValidator.QuizAnswer{
				{QuestionID: 2, ChosenIndex: 0},
				{QuestionID: 2, ChosenIndex: 1},
				{QuestionID: 2, ChosenIndex: 3},
			},
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := GradeQuiz(questions, &courseValidator.QuizSubmission{Answers: tt.answers})
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, len(questions), total)
		})
	}
}
