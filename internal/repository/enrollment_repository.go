package repository

import (
	"context"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.DB.WithContext(ctx).Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateProgress 刷新报名记录上缓存的完成百分比；完成 100% 时标记为已完成，
// 退回未完成时恢复为 enrolled
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID uint, summary model.CourseProgressSummary) error {
	updates := map[string]interface{}{
		"progress": summary.Percentage,
	}
	if summary.IsComplete() {
		now := time.Now()
		updates["status"] = model.EnrollmentCompleted
		updates["completed_at"] = &now
	} else {
		updates["status"] = model.EnrollmentEnrolled
		updates["completed_at"] = nil
	}

	return r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates).Error
}
