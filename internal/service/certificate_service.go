package service

import (
	"context"
	"errors"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateService struct {
	Repo           *repository.CertificateRepository
	AssessmentRepo *repository.AssessmentRepository
	Learning       *LearningService
	Progress       *ProgressService
}

func NewCertificateService(
	repo *repository.CertificateRepository,
	assessmentRepo *repository.AssessmentRepository,
	learning *LearningService,
	progress *ProgressService,
) *CertificateService {
	return &CertificateService{
		Repo:           repo,
		AssessmentRepo: assessmentRepo,
		Learning:       learning,
		Progress:       progress,
	}
}

func newCertificateNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("CERT-%s-%s", now.Format("20060102"), suffix)
}

// Issue 课程资料全部完成且路径中的测验均已通过时颁发证书，重复调用返回同一张证书
func (s *CertificateService) Issue(ctx context.Context, sess model.Session, courseID uint) (*model.Certificate, error) {
	if err := s.Learning.requireEnrollment(ctx, sess, courseID); err != nil {
		return nil, err
	}

	existing, err := s.Repo.Find(ctx, sess.UserID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	summary, err := s.Progress.summary(ctx, sess.UserID, courseID)
	if err != nil {
		return nil, err
	}
	if !summary.IsComplete() {
		return nil, util.ErrCourseNotCompleted
	}

	if err := s.requirePassed(ctx, sess.UserID, courseID); err != nil {
		return nil, err
	}

	now := time.Now()
	cert := &model.Certificate{
		UserID:            sess.UserID,
		CourseID:          courseID,
		CertificateNumber: newCertificateNumber(now),
		IssuedAt:          now,
	}
	if err := s.Repo.Create(ctx, cert); err != nil {
		// 并发颁发时唯一索引冲突，返回已存在的那一张
		if existing, findErr := s.Repo.Find(ctx, sess.UserID, courseID); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return cert, nil
}

// requirePassed 只要求学习路径中出现的测验全部通过；超出测验位数量的测验不会出现，也不计入
func (s *CertificateService) requirePassed(ctx context.Context, userID, courseID uint) error {
	path, err := s.Learning.BuildPath(ctx, userID, courseID)
	if err != nil {
		return err
	}
	ids, err := s.AssessmentRepo.PassedIDs(ctx, userID, courseID)
	if err != nil {
		return err
	}
	passed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		passed[id] = true
	}
	for _, slot := range path.QuizSlots() {
		if slot.Assessment != nil && !passed[slot.Assessment.ID] {
			return util.ErrAssessmentsNotPassed
		}
	}
	return nil
}

func (s *CertificateService) List(ctx context.Context, sess model.Session) ([]model.Certificate, error) {
	return s.Repo.ListByUser(ctx, sess.UserID)
}
