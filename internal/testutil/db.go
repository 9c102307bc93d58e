// Package testutil 提供基于内存 SQLite 的测试数据库和种子数据。
package testutil

import (
	"fmt"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 每个测试独立的内存库，已完成迁移，测试结束自动关闭
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(tb, err)

	sqlDB, err := db.DB()
	require.NoError(tb, err)
	// 单连接，避免共享缓存下的表锁
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	require.NoError(tb, database.AutoMigrate(db))
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, role model.UserRole) *model.User {
	tb.Helper()
	user := &model.User{
		Name:     "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(tb, db.Create(user).Error)
	return user
}

func SeedCourse(tb testing.TB, db *gorm.DB) *model.Course {
	tb.Helper()
	course := &model.Course{Title: "Go 入门", IsPublished: true}
	require.NoError(tb, db.Create(course).Error)
	return course
}

// SeedMaterials 按 sort_order 1..n 创建资料
func SeedMaterials(tb testing.TB, db *gorm.DB, courseID uint, n int) []model.StudyMaterial {
	tb.Helper()
	materials := make([]model.StudyMaterial, n)
	for i := range materials {
		materials[i] = model.StudyMaterial{
			CourseID:     courseID,
			Title:        fmt.Sprintf("第 %d 节", i+1),
			MaterialType: model.MaterialMarkdown,
			SortOrder:    i + 1,
		}
		require.NoError(tb, db.Create(&materials[i]).Error)
	}
	return materials
}

// SeedAssessments 每个测验带一道 2 分的单选题，及格线 1 分，正确选项为 0
func SeedAssessments(tb testing.TB, db *gorm.DB, courseID uint, n int) []model.Assessment {
	tb.Helper()
	assessments := make([]model.Assessment, n)
	for i := range assessments {
		assessments[i] = model.Assessment{
			CourseID:     courseID,
			Title:        fmt.Sprintf("测验 %d", i+1),
			TotalMarks:   2,
			PassingMarks: 1,
			SortOrder:    i + 1,
		}
		require.NoError(tb, db.Create(&assessments[i]).Error)
		q := &model.AssessmentQuestion{
			AssessmentID:  assessments[i].ID,
			Content:       "1 + 1 = ?",
			Options:       []byte(`["2","3"]`),
			CorrectOption: 0,
			Marks:         2,
		}
		require.NoError(tb, db.Create(q).Error)
	}
	return assessments
}

func Enroll(tb testing.TB, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	tb.Helper()
	e := &model.Enrollment{UserID: userID, CourseID: courseID, Status: model.EnrollmentEnrolled}
	require.NoError(tb, db.Create(e).Error)
	return e
}
