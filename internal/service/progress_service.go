package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProgressService 学习进度存储。读操作失败时返回空结果并通知用户，
// 切换操作失败时返回 false，不重试
type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	MaterialRepo   *repository.StudyMaterialRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Notifier       Notifier

	// 相同 (用户, 资料, 当前状态) 的并发切换只执行一次写入
	inflight singleflight.Group
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	materialRepo *repository.StudyMaterialRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	notifier Notifier,
) *ProgressService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ProgressService{
		ProgressRepo:   progressRepo,
		MaterialRepo:   materialRepo,
		EnrollmentRepo: enrollmentRepo,
		Notifier:       notifier,
	}
}

// GetStudyProgress 当前用户在课程中的全部进度记录
func (s *ProgressService) GetStudyProgress(ctx context.Context, sess model.Session, courseID uint) []model.ProgressRecord {
	ctx, span := tracing.Tracer.Start(ctx, "progress.GetStudyProgress")
	defer span.End()

	if !sess.Valid() {
		return []model.ProgressRecord{}
	}

	records, err := s.ProgressRepo.ListByUserAndCourse(ctx, sess.UserID, courseID)
	if err != nil {
		span.RecordError(err)
		logger.Log.Error("获取学习进度失败",
			zap.Uint("userID", sess.UserID),
			zap.Uint("courseID", courseID),
			zap.Error(err))
		s.Notifier.Notify(ctx, sess.UserID, NotifyError, "加载学习进度失败")
		return []model.ProgressRecord{}
	}
	if records == nil {
		records = []model.ProgressRecord{}
	}
	return records
}

// GetCourseProgress 课程完成度汇总，失败时返回零值
func (s *ProgressService) GetCourseProgress(ctx context.Context, sess model.Session, courseID uint) model.CourseProgressSummary {
	ctx, span := tracing.Tracer.Start(ctx, "progress.GetCourseProgress")
	defer span.End()

	if !sess.Valid() {
		return model.CourseProgressSummary{}
	}

	summary, err := s.summary(ctx, sess.UserID, courseID)
	if err != nil {
		span.RecordError(err)
		logger.Log.Error("计算课程进度失败",
			zap.Uint("userID", sess.UserID),
			zap.Uint("courseID", courseID),
			zap.Error(err))
		s.Notifier.Notify(ctx, sess.UserID, NotifyError, "计算课程进度失败")
		return model.CourseProgressSummary{}
	}
	return summary
}

func (s *ProgressService) summary(ctx context.Context, userID, courseID uint) (model.CourseProgressSummary, error) {
	total, err := s.MaterialRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return model.CourseProgressSummary{}, fmt.Errorf("count materials: %w", err)
	}
	completed, err := s.ProgressRepo.CountCompleted(ctx, userID, courseID)
	if err != nil {
		return model.CourseProgressSummary{}, fmt.Errorf("count completed: %w", err)
	}
	return model.NewCourseProgressSummary(int(completed), int(total)), nil
}

// ToggleMaterialCompletion 把资料完成状态切换为 !currentStatus，成功返回 true
func (s *ProgressService) ToggleMaterialCompletion(ctx context.Context, sess model.Session, materialID string, courseID uint, currentStatus bool) bool {
	ctx, span := tracing.Tracer.Start(ctx, "progress.ToggleMaterialCompletion")
	defer span.End()
	span.SetAttributes(
		attribute.String("material.id", materialID),
		attribute.Int64("course.id", int64(courseID)),
		attribute.Bool("current_status", currentStatus),
	)

	if !sess.Valid() {
		return false
	}

	// 合并的请求共享同一次写入，不能因发起者断开而一起失败
	workCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%d:%s:%t", sess.UserID, materialID, currentStatus)
	_, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		record, err := s.ProgressRepo.Toggle(workCtx, sess.UserID, courseID, materialID, currentStatus)
		if err != nil {
			return nil, err
		}
		s.refreshEnrollment(workCtx, sess.UserID, courseID)
		return record, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		monitoring.ProgressToggles.WithLabelValues("failure").Inc()
		logger.Log.Error("更新学习进度失败",
			zap.Uint("userID", sess.UserID),
			zap.String("materialID", materialID),
			zap.Uint("courseID", courseID),
			zap.Error(err))
		s.Notifier.Notify(workCtx, sess.UserID, NotifyError, "更新学习进度失败，请稍后重试")
		return false
	}

	if shared {
		monitoring.ProgressToggles.WithLabelValues("shared").Inc()
	} else {
		monitoring.ProgressToggles.WithLabelValues("success").Inc()
	}
	return true
}

// refreshEnrollment 同步报名记录上的进度缓存，失败只记日志
func (s *ProgressService) refreshEnrollment(ctx context.Context, userID, courseID uint) {
	summary, err := s.summary(ctx, userID, courseID)
	if err == nil {
		err = s.EnrollmentRepo.UpdateProgress(ctx, userID, courseID, summary)
	}
	if err != nil {
		logger.Log.Warn("刷新报名进度失败",
			zap.Uint("userID", userID),
			zap.Uint("courseID", courseID),
			zap.Error(err))
	}
}
