package repository

import (
	"context"
	"errors"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// courseMaterials 课程当前仍存在的资料 id 子查询
func (r *ProgressRepository) courseMaterials(tx *gorm.DB, courseID uint) *gorm.DB {
	return tx.Model(&model.StudyMaterial{}).Select("id").Where("course_id = ?", courseID)
}

// ListByUserAndCourse 用户在课程中的全部进度记录，只包含仍属于该课程的资料
func (r *ProgressRepository) ListByUserAndCourse(ctx context.Context, userID, courseID uint) ([]model.ProgressRecord, error) {
	db := r.DB.WithContext(ctx)

	var records []model.ProgressRecord
	err := db.
		Where("user_id = ? AND study_material_id IN (?)", userID, r.courseMaterials(db, courseID)).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

// CountCompleted 用户在课程中已完成的资料数
func (r *ProgressRepository) CountCompleted(ctx context.Context, userID, courseID uint) (int64, error) {
	db := r.DB.WithContext(ctx)

	var count int64
	err := db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND completed = ? AND study_material_id IN (?)", userID, true, r.courseMaterials(db, courseID)).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) Find(ctx context.Context, userID uint, materialID string) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND study_material_id = ?", userID, materialID).
		First(&record).Error
	return &record, err
}

// Toggle 把完成状态切换为 !currentStatus。记录不存在时创建，存在时原地更新；
// 任何一步失败整个事务回滚，资料不属于课程时返回 gorm.ErrRecordNotFound
func (r *ProgressRepository) Toggle(ctx context.Context, userID, courseID uint, materialID string, currentStatus bool) (*model.ProgressRecord, error) {
	completed := !currentStatus
	var record model.ProgressRecord

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var material model.StudyMaterial
		if err := tx.Select("id").Where("id = ? AND course_id = ?", materialID, courseID).First(&material).Error; err != nil {
			return err
		}

		now := time.Now()
		err := tx.Where("user_id = ? AND study_material_id = ?", userID, materialID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = model.ProgressRecord{
				UserID:          userID,
				CourseID:        courseID,
				StudyMaterialID: materialID,
				Completed:       completed,
			}
			if completed {
				record.CompletedAt = &now
			}
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}

		record.Completed = completed
		if completed {
			record.CompletedAt = &now
		} else {
			record.CompletedAt = nil
		}
		return tx.Model(&record).Select("completed", "completed_at", "updated_at").Updates(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
