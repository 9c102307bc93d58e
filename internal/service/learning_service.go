package service

import (
	"context"
	"errors"
	"lms_backend/internal/learningpath"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// LearningService 组装课程的学习路径：资料、测验与当前用户的进度
type LearningService struct {
	CourseRepo     *repository.CourseRepository
	MaterialRepo   *repository.StudyMaterialRepository
	AssessmentRepo *repository.AssessmentRepository
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Progress       *ProgressService

	blockSize atomic.Int64
}

func NewLearningService(
	courseRepo *repository.CourseRepository,
	materialRepo *repository.StudyMaterialRepository,
	assessmentRepo *repository.AssessmentRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progress *ProgressService,
	blockSize int,
) *LearningService {
	s := &LearningService{
		CourseRepo:     courseRepo,
		MaterialRepo:   materialRepo,
		AssessmentRepo: assessmentRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		Progress:       progress,
	}
	s.SetBlockSize(blockSize)
	return s
}

// SetBlockSize 配置热更新时调用，非正数回退为默认值
func (s *LearningService) SetBlockSize(n int) {
	if n <= 0 {
		n = learningpath.DefaultBlockSize
	}
	s.blockSize.Store(int64(n))
}

func (s *LearningService) BlockSize() int {
	return int(s.blockSize.Load())
}

// BuildPath 并发加载资料、测验和进度后构建学习路径；userID 为 0 时不加载进度
func (s *LearningService) BuildPath(ctx context.Context, userID, courseID uint) (*learningpath.Path, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	var (
		materials   []model.StudyMaterial
		assessments []model.Assessment
		records     []model.ProgressRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = s.MaterialRepo.ListByCourse(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		assessments, err = s.AssessmentRepo.ListByCourse(gctx, courseID)
		return err
	})
	if userID != 0 {
		g.Go(func() error {
			var err error
			records, err = s.ProgressRepo.ListByUserAndCourse(gctx, userID, courseID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return learningpath.New(materials, assessments, records, learningpath.WithBlockSize(s.BlockSize())), nil
}

// requireEnrollment 管理员不受报名限制
func (s *LearningService) requireEnrollment(ctx context.Context, sess model.Session, courseID uint) error {
	if !sess.Valid() {
		return util.ErrUnauthorized
	}
	if sess.IsAdmin() {
		return nil
	}
	ok, err := s.EnrollmentRepo.Exists(ctx, sess.UserID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNotEnrolled
	}
	return nil
}

func mapPathError(err error) error {
	switch {
	case errors.Is(err, learningpath.ErrMaterialNotInPath):
		return util.ErrMaterialNotFound
	case errors.Is(err, learningpath.ErrMaterialLocked):
		return util.ErrMaterialLocked
	case errors.Is(err, learningpath.ErrQuizNotAvailable):
		return util.ErrQuizNotAvailable
	}
	return err
}

type LearningPathItem struct {
	Index    int                 `json:"index"`
	Material model.StudyMaterial `json:"material"`
	State    learningpath.State  `json:"state"`
	Unlocked bool                `json:"unlocked"`
	Quiz     *model.Assessment   `json:"quiz,omitempty"`
}

type LearningPathView struct {
	CourseID  uint                        `json:"courseId"`
	BlockSize int                         `json:"blockSize"`
	Items     []LearningPathItem          `json:"items"`
	Summary   model.CourseProgressSummary `json:"summary"`
	Selected  learningpath.Selection      `json:"selected"`
}

// SelectionRequest 二选一；都为空时选中第一个资料
type SelectionRequest struct {
	MaterialID   string
	AssessmentID uint
}

func (s *LearningService) GetLearningPath(ctx context.Context, sess model.Session, courseID uint, req SelectionRequest) (*LearningPathView, error) {
	if err := s.requireEnrollment(ctx, sess, courseID); err != nil {
		return nil, err
	}
	path, err := s.BuildPath(ctx, sess.UserID, courseID)
	if err != nil {
		return nil, err
	}

	sel := path.DefaultSelection()
	switch {
	case req.AssessmentID != 0:
		sel, err = path.SelectAssessment(sel, req.AssessmentID)
	case req.MaterialID != "":
		sel, err = path.SelectMaterial(sel, req.MaterialID)
	}
	if err != nil {
		return nil, mapPathError(err)
	}

	items := path.Items()
	view := &LearningPathView{
		CourseID:  courseID,
		BlockSize: s.BlockSize(),
		Items:     make([]LearningPathItem, 0, len(items)),
		Summary:   path.Summary(),
		Selected:  sel,
	}
	for _, it := range items {
		view.Items = append(view.Items, LearningPathItem{
			Index:    it.Index,
			Material: it.Material,
			State:    it.State,
			Unlocked: it.State != learningpath.StateLocked,
			Quiz:     it.Quiz,
		})
	}
	return view, nil
}

type NavigationView struct {
	Index       int                  `json:"index"`
	Total       int                  `json:"total"`
	State       learningpath.State   `json:"state"`
	HasNext     bool                 `json:"hasNext"`
	HasPrevious bool                 `json:"hasPrevious"`
	CanGoNext   bool                 `json:"canGoNext"`
	Next        *model.StudyMaterial `json:"next,omitempty"`
	Previous    *model.StudyMaterial `json:"previous,omitempty"`
	QuizAfter   *model.Assessment    `json:"quizAfter,omitempty"`
}

// GetNavigation 只能前往下一个资料当且仅当当前资料已完成
func (s *LearningService) GetNavigation(ctx context.Context, sess model.Session, courseID uint, materialID string) (*NavigationView, error) {
	if err := s.requireEnrollment(ctx, sess, courseID); err != nil {
		return nil, err
	}
	path, err := s.BuildPath(ctx, sess.UserID, courseID)
	if err != nil {
		return nil, err
	}

	idx := path.IndexOf(materialID)
	if idx < 0 {
		return nil, util.ErrMaterialNotFound
	}
	if !path.IsUnlocked(idx) {
		return nil, util.ErrMaterialLocked
	}

	nav := path.Navigation(idx)
	view := &NavigationView{
		Index:       idx,
		Total:       path.Len(),
		State:       path.State(idx),
		HasNext:     nav.HasNext,
		HasPrevious: nav.HasPrevious,
		CanGoNext:   nav.HasNext && path.IsCompleted(idx),
		Next:        nav.Next,
		Previous:    nav.Previous,
	}
	if quiz, ok := path.QuizAfter(idx); ok {
		view.QuizAfter = quiz
	}
	return view, nil
}

type ToggleResult struct {
	MaterialID string                      `json:"materialId"`
	Completed  bool                        `json:"completed"`
	Summary    model.CourseProgressSummary `json:"summary"`
}

// ToggleMaterial 锁定的资料不允许切换；写入失败返回 ErrProgressUpdateFailed
func (s *LearningService) ToggleMaterial(ctx context.Context, sess model.Session, courseID uint, materialID string, currentStatus bool) (*ToggleResult, error) {
	if err := s.requireEnrollment(ctx, sess, courseID); err != nil {
		return nil, err
	}
	path, err := s.BuildPath(ctx, sess.UserID, courseID)
	if err != nil {
		return nil, err
	}

	idx := path.IndexOf(materialID)
	if idx < 0 {
		return nil, util.ErrMaterialNotFound
	}
	if !path.IsUnlocked(idx) {
		return nil, util.ErrMaterialLocked
	}

	if !s.Progress.ToggleMaterialCompletion(ctx, sess, materialID, courseID, currentStatus) {
		return nil, util.ErrProgressUpdateFailed
	}

	return &ToggleResult{
		MaterialID: materialID,
		Completed:  !currentStatus,
		Summary:    s.Progress.GetCourseProgress(ctx, sess, courseID),
	}, nil
}

// QuizVisible 测验是否已在用户的学习路径中出现
func (s *LearningService) QuizVisible(ctx context.Context, userID, courseID, assessmentID uint) (bool, error) {
	path, err := s.BuildPath(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return path.QuizVisible(assessmentID), nil
}
