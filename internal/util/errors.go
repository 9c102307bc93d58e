package util

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseNotPublished   = errors.New("course not published")
	ErrNotEnrolled          = errors.New("not enrolled in course")
	ErrAlreadyEnrolled      = errors.New("already enrolled in course")
	ErrMaterialNotFound     = errors.New("study material not found")
	ErrMaterialLocked       = errors.New("study material is locked")
	ErrInvalidMaterialType  = errors.New("invalid material type")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrQuizNotAvailable     = errors.New("quiz not available yet")
	ErrProgressUpdateFailed = errors.New("failed to update study progress")
	ErrCourseNotCompleted   = errors.New("course not completed")
	ErrAssessmentsNotPassed = errors.New("not all assessments passed")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrInvalidContentURL    = errors.New("invalid content url")
	ErrInvalidQuestion      = errors.New("question needs at least two options and a valid correct option")
)
