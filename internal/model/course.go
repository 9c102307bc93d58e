package model

import "time"

const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnailUrl"`
	IsPublished  bool   `gorm:"default:false" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"index:idx_enrollment_user_course,unique;not null" json:"userId"`
	CourseID    uint       `gorm:"index:idx_enrollment_user_course,unique;not null" json:"courseId"`
	Status      string     `gorm:"size:20;default:'enrolled'" json:"status"`
	Progress    int        `gorm:"default:0" json:"progress"` // 完成百分比缓存 0-100
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
