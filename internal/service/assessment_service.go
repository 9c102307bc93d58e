package service

import (
	"context"
	"encoding/json"
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo       *repository.AssessmentRepository
	CourseRepo *repository.CourseRepository
	Learning   *LearningService
}

func NewAssessmentService(repo *repository.AssessmentRepository, courseRepo *repository.CourseRepository, learning *LearningService) *AssessmentService {
	return &AssessmentService{Repo: repo, CourseRepo: courseRepo, Learning: learning}
}

type AssessmentInput struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes" binding:"min=0"`
	PassingMarks    int    `json:"passingMarks" binding:"min=0"`
	SortOrder       int    `json:"sortOrder"`
}

type QuestionInput struct {
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correctOption"`
	Marks         int      `json:"marks" binding:"min=0"`
	SortOrder     int      `json:"sortOrder"`
}

func (in QuestionInput) validate() error {
	if len(in.Options) < 2 || in.CorrectOption < 0 || in.CorrectOption >= len(in.Options) {
		return util.ErrInvalidQuestion
	}
	return nil
}

func (in QuestionInput) apply(q *model.AssessmentQuestion) error {
	options, err := json.Marshal(in.Options)
	if err != nil {
		return err
	}
	q.Content = in.Content
	q.Options = datatypes.JSON(options)
	q.CorrectOption = in.CorrectOption
	q.Marks = in.Marks
	if q.Marks == 0 {
		q.Marks = 1
	}
	q.SortOrder = in.SortOrder
	return nil
}

func (s *AssessmentService) find(ctx context.Context, id uint) (*model.Assessment, error) {
	assessment, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) List(ctx context.Context, courseID uint) ([]model.Assessment, error) {
	return s.Repo.ListByCourse(ctx, courseID)
}

func (s *AssessmentService) Create(ctx context.Context, courseID uint, in AssessmentInput) (*model.Assessment, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	assessment := &model.Assessment{
		CourseID:        courseID,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		PassingMarks:    in.PassingMarks,
		SortOrder:       in.SortOrder,
	}
	if err := s.Repo.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) Update(ctx context.Context, id uint, in AssessmentInput) (*model.Assessment, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	assessment.Title = in.Title
	assessment.Description = in.Description
	assessment.DurationMinutes = in.DurationMinutes
	assessment.PassingMarks = in.PassingMarks
	assessment.SortOrder = in.SortOrder
	if err := s.Repo.Update(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// refreshTotalMarks 题目变动后同步测验总分
func (s *AssessmentService) refreshTotalMarks(ctx context.Context, assessment *model.Assessment) error {
	total, err := s.Repo.SumMarks(ctx, assessment.ID)
	if err != nil {
		return err
	}
	assessment.TotalMarks = total
	return s.Repo.Update(ctx, assessment)
}

func (s *AssessmentService) ListQuestions(ctx context.Context, assessmentID uint) ([]model.AssessmentQuestion, error) {
	if _, err := s.find(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.Repo.ListQuestions(ctx, assessmentID)
}

func (s *AssessmentService) AddQuestion(ctx context.Context, assessmentID uint, in QuestionInput) (*model.AssessmentQuestion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	assessment, err := s.find(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	question := &model.AssessmentQuestion{AssessmentID: assessmentID}
	if err := in.apply(question); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, s.refreshTotalMarks(ctx, assessment)
}

func (s *AssessmentService) UpdateQuestion(ctx context.Context, questionID uint, in QuestionInput) (*model.AssessmentQuestion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	question, err := s.Repo.FindQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if err := in.apply(question); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}

	assessment, err := s.find(ctx, question.AssessmentID)
	if err != nil {
		return nil, err
	}
	return question, s.refreshTotalMarks(ctx, assessment)
}

func (s *AssessmentService) DeleteQuestion(ctx context.Context, questionID uint) error {
	question, err := s.Repo.FindQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssessmentNotFound
		}
		return err
	}
	if err := s.Repo.DeleteQuestion(ctx, questionID); err != nil {
		return err
	}
	assessment, err := s.find(ctx, question.AssessmentID)
	if err != nil {
		return err
	}
	return s.refreshTotalMarks(ctx, assessment)
}

// StudentQuestion 学生看到的题目，不包含正确答案
type StudentQuestion struct {
	ID      uint     `json:"id"`
	Content string   `json:"content"`
	Options []string `json:"options"`
	Marks   int      `json:"marks"`
}

type StudentAssessment struct {
	Assessment *model.Assessment        `json:"assessment"`
	Questions  []StudentQuestion        `json:"questions"`
	Results    []model.AssessmentResult `json:"results"`
}

// accessible 学生只能访问已报名课程中已出现在学习路径上的测验
func (s *AssessmentService) accessible(ctx context.Context, sess model.Session, id uint) (*model.Assessment, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Learning.requireEnrollment(ctx, sess, assessment.CourseID); err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return assessment, nil
	}
	visible, err := s.Learning.QuizVisible(ctx, sess.UserID, assessment.CourseID, id)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, util.ErrQuizNotAvailable
	}
	return assessment, nil
}

func (s *AssessmentService) GetForStudent(ctx context.Context, sess model.Session, id uint) (*StudentAssessment, error) {
	assessment, err := s.accessible(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.Repo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.Repo.ListResults(ctx, sess.UserID, id)
	if err != nil {
		return nil, err
	}

	view := &StudentAssessment{
		Assessment: assessment,
		Questions:  make([]StudentQuestion, 0, len(questions)),
		Results:    results,
	}
	for _, q := range questions {
		var options []string
		if len(q.Options) > 0 {
			if err := json.Unmarshal(q.Options, &options); err != nil {
				return nil, err
			}
		}
		view.Questions = append(view.Questions, StudentQuestion{
			ID:      q.ID,
			Content: q.Content,
			Options: options,
			Marks:   q.Marks,
		})
	}
	return view, nil
}

// Submit 判分：答对的题目累计分值，达到及格线即通过。未作答的题目记 0 分
func (s *AssessmentService) Submit(ctx context.Context, sess model.Session, id uint, answers map[uint]int) (*model.AssessmentResult, error) {
	assessment, err := s.accessible(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.Repo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}

	score, total := 0, 0
	for _, q := range questions {
		total += q.Marks
		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectOption {
			score += q.Marks
		}
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	result := &model.AssessmentResult{
		AssessmentID: assessment.ID,
		UserID:       sess.UserID,
		Score:        score,
		TotalMarks:   total,
		Passed:       score >= assessment.PassingMarks,
		Answers:      datatypes.JSON(raw),
		SubmittedAt:  time.Now(),
	}
	if err := s.Repo.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}
