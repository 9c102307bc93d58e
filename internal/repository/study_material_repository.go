package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type StudyMaterialRepository struct {
	DB *gorm.DB
}

func NewStudyMaterialRepository(db *gorm.DB) *StudyMaterialRepository {
	return &StudyMaterialRepository{DB: db}
}

func (r *StudyMaterialRepository) Create(ctx context.Context, material *model.StudyMaterial) error {
	return r.DB.WithContext(ctx).Create(material).Error
}

func (r *StudyMaterialRepository) FindByID(ctx context.Context, id string) (*model.StudyMaterial, error) {
	var material model.StudyMaterial
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&material).Error
	return &material, err
}

// FindInCourse 资料必须属于指定课程
func (r *StudyMaterialRepository) FindInCourse(ctx context.Context, courseID uint, id string) (*model.StudyMaterial, error) {
	var material model.StudyMaterial
	err := r.DB.WithContext(ctx).Where("id = ? AND course_id = ?", id, courseID).First(&material).Error
	return &material, err
}

// ListByCourse 按 sort_order 升序返回课程的全部资料
func (r *StudyMaterialRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.StudyMaterial, error) {
	var materials []model.StudyMaterial
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC, created_at ASC").
		Find(&materials).Error
	return materials, err
}

func (r *StudyMaterialRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.StudyMaterial{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// NextSortOrder 新资料默认排在课程末尾
func (r *StudyMaterialRepository) NextSortOrder(ctx context.Context, courseID uint) (int, error) {
	var maxOrder *int
	err := r.DB.WithContext(ctx).Model(&model.StudyMaterial{}).
		Where("course_id = ?", courseID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error
	if err != nil || maxOrder == nil {
		return 1, err
	}
	return *maxOrder + 1, nil
}

func (r *StudyMaterialRepository) Update(ctx context.Context, material *model.StudyMaterial) error {
	return r.DB.WithContext(ctx).Save(material).Error
}

func (r *StudyMaterialRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.StudyMaterial{}).Error
}
