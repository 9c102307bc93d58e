package model

import (
	"math"
	"time"
)

// ProgressRecord 学生对某个学习资料的完成状态，(user, material) 唯一
// 首次切换时创建，之后只更新不删除
// swagger:model ProgressRecord
type ProgressRecord struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint       `gorm:"index:idx_progress_user_material,unique;not null" json:"userId"`
	CourseID        uint       `gorm:"index;not null" json:"courseId"`
	StudyMaterialID string     `gorm:"index:idx_progress_user_material,unique;type:varchar(36);not null" json:"studyMaterialId"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (ProgressRecord) TableName() string {
	return "study_progress"
}

// CourseProgressSummary 课程完成度汇总，不落库
type CourseProgressSummary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func NewCourseProgressSummary(completed, total int) CourseProgressSummary {
	s := CourseProgressSummary{Completed: completed, Total: total}
	if total > 0 {
		s.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return s
}

func (s CourseProgressSummary) IsComplete() bool {
	return s.Total > 0 && s.Completed >= s.Total
}
