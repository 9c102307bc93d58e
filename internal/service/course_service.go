package service

import (
	"context"
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

type CourseInput struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	IsPublished  bool   `json:"isPublished"`
}

func (in CourseInput) apply(c *model.Course) {
	c.Title = in.Title
	c.Description = in.Description
	c.ThumbnailURL = in.ThumbnailURL
	c.IsPublished = in.IsPublished
}

func (s *CourseService) Create(ctx context.Context, in CourseInput) (*model.Course, error) {
	course := &model.Course{}
	in.apply(course)
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get 未发布的课程只有管理员可见
func (s *CourseService) Get(ctx context.Context, sess model.Session, id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished && !sess.IsAdmin() {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context, sess model.Session, page, limit int) (*util.PageResponse, error) {
	courses, total, err := s.CourseRepo.List(ctx, !sess.IsAdmin(), page, limit)
	if err != nil {
		return nil, err
	}
	return &util.PageResponse{List: courses, Total: total, Page: page, Limit: limit}, nil
}

func (s *CourseService) Update(ctx context.Context, id uint, in CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	in.apply(course)
	if err := s.CourseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.CourseRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(ctx, id)
}

// Enroll 只能报名已发布的课程，重复报名返回 ErrAlreadyEnrolled
func (s *CourseService) Enroll(ctx context.Context, sess model.Session, courseID uint) (*model.Enrollment, error) {
	course, err := s.Get(ctx, sess, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	exists, err := s.EnrollmentRepo.Exists(ctx, sess.UserID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:   sess.UserID,
		CourseID: courseID,
		Status:   model.EnrollmentEnrolled,
	}
	if err := s.EnrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = course
	return enrollment, nil
}

func (s *CourseService) ListEnrollments(ctx context.Context, sess model.Session) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(ctx, sess.UserID)
}
