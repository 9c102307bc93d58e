package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.DB.WithContext(ctx).Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.WithContext(ctx).First(&assessment, id).Error
	return &assessment, err
}

// ListByCourse 按 sort_order 升序，测验插入学习路径时依赖这个顺序
func (r *AssessmentRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	return r.DB.WithContext(ctx).Save(assessment).Error
}

// Delete 同时删除测验下的题目
func (r *AssessmentRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *AssessmentRepository) CreateQuestion(ctx context.Context, question *model.AssessmentQuestion) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *AssessmentRepository) FindQuestion(ctx context.Context, id uint) (*model.AssessmentQuestion, error) {
	var question model.AssessmentQuestion
	err := r.DB.WithContext(ctx).First(&question, id).Error
	return &question, err
}

func (r *AssessmentRepository) ListQuestions(ctx context.Context, assessmentID uint) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := r.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("sort_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) UpdateQuestion(ctx context.Context, question *model.AssessmentQuestion) error {
	return r.DB.WithContext(ctx).Save(question).Error
}

func (r *AssessmentRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.AssessmentQuestion{}, id).Error
}

// SumMarks 重新计算测验总分
func (r *AssessmentRepository) SumMarks(ctx context.Context, assessmentID uint) (int, error) {
	var total int
	err := r.DB.WithContext(ctx).Model(&model.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
		Select("COALESCE(SUM(marks), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AssessmentRepository) CreateResult(ctx context.Context, result *model.AssessmentResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *AssessmentRepository) ListResults(ctx context.Context, userID, assessmentID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

// PassedIDs 课程中用户至少通过一次的测验 ID
func (r *AssessmentRepository) PassedIDs(ctx context.Context, userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.AssessmentResult{}).
		Joins("JOIN assessments ON assessments.id = assessment_results.assessment_id AND assessments.deleted_at IS NULL").
		Where("assessment_results.user_id = ? AND assessments.course_id = ? AND assessment_results.passed = ?", userID, courseID, true).
		Distinct().
		Pluck("assessment_results.assessment_id", &ids).Error
	return ids, err
}
