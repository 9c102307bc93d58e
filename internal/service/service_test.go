package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/testutil"

	"gorm.io/gorm"
)

type sentNotification struct {
	UserID  uint
	Level   string
	Message string
}

// recordingNotifier 记录发出的通知
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(ctx context.Context, userID uint, level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Level: level, Message: message})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fixture struct {
	db          *gorm.DB
	cfg         *config.Config
	notifier    *recordingNotifier
	enrollments *repository.EnrollmentRepository
	progress    *ProgressService
	learning    *LearningService
	courses     *CourseService
	materials   *MaterialService
	assessments *AssessmentService
	certs       *CertificateService
	auth        *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	materialRepo := repository.NewStudyMaterialRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	certRepo := repository.NewCertificateRepository(db)

	notifier := &recordingNotifier{}
	progress := NewProgressService(progressRepo, materialRepo, enrollmentRepo, notifier)
	learning := NewLearningService(courseRepo, materialRepo, assessmentRepo, progressRepo, enrollmentRepo, progress, 3)

	return &fixture{
		db:          db,
		cfg:         cfg,
		notifier:    notifier,
		enrollments: enrollmentRepo,
		progress:    progress,
		learning:    learning,
		courses:     NewCourseService(courseRepo, enrollmentRepo),
		materials:   NewMaterialService(courseRepo, materialRepo, NewStorageService(cfg), nil),
		assessments: NewAssessmentService(assessmentRepo, courseRepo, learning),
		certs:       NewCertificateService(certRepo, assessmentRepo, learning, progress),
		auth:        NewAuthService(userRepo, cfg),
	}
}

// student 创建一个已报名课程的学生
func (f *fixture) student(t *testing.T, courseID uint) model.Session {
	t.Helper()
	user := testutil.SeedUser(t, f.db, model.Student)
	testutil.Enroll(t, f.db, user.ID, courseID)
	return model.Session{UserID: user.ID, Role: model.Student}
}

// complete 依次完成资料
func (f *fixture) complete(t *testing.T, sess model.Session, courseID uint, ms ...model.StudyMaterial) {
	t.Helper()
	for _, m := range ms {
		if !f.progress.ToggleMaterialCompletion(context.Background(), sess, m.ID, courseID, false) {
			t.Fatalf("toggle %s failed", m.ID)
		}
	}
}
