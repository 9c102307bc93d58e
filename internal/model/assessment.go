package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Assessment
type Assessment struct {
	BaseModel
	CourseID        uint   `gorm:"index;not null" json:"courseId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
	TotalMarks      int    `gorm:"default:0" json:"totalMarks"`
	PassingMarks    int    `gorm:"default:0" json:"passingMarks"`
	SortOrder       int    `gorm:"default:0" json:"sortOrder"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	AssessmentID  uint           `gorm:"index;not null" json:"assessmentId"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSON `json:"options"` // []string
	CorrectOption int            `gorm:"default:0" json:"correctOption"`
	Marks         int            `gorm:"default:1" json:"marks"`
	SortOrder     int            `gorm:"default:0" json:"sortOrder"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// swagger:model AssessmentResult
type AssessmentResult struct {
	BaseModel
	AssessmentID uint           `gorm:"index;not null" json:"assessmentId"`
	UserID       uint           `gorm:"index;not null" json:"userId"`
	Score        int            `json:"score"`
	TotalMarks   int            `json:"totalMarks"`
	Passed       bool           `json:"passed"`
	Answers      datatypes.JSON `json:"answers"` // map[questionID]optionIndex
	SubmittedAt  time.Time      `json:"submittedAt"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}
