package repository

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyMaterialOrderingAndNextSortOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStudyMaterialRepository(db)
	ctx := context.Background()

	course := testutil.SeedCourse(t, db)
	next, err := repo.NextSortOrder(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	require.NoError(t, repo.Create(ctx, &model.StudyMaterial{CourseID: course.ID, Title: "b", MaterialType: model.MaterialPDF, SortOrder: 5}))
	require.NoError(t, repo.Create(ctx, &model.StudyMaterial{CourseID: course.ID, Title: "a", MaterialType: model.MaterialPDF, SortOrder: 2}))

	list, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Title)
	assert.NotEmpty(t, list[0].ID, "uuid assigned on create")

	next, err = repo.NextSortOrder(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, next)

	count, err := repo.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestEnrollmentUpdateProgress(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, model.Student)
	course := testutil.SeedCourse(t, db)
	testutil.Enroll(t, db, user.ID, course.ID)

	require.NoError(t, repo.UpdateProgress(ctx, user.ID, course.ID, model.NewCourseProgressSummary(2, 2)))
	e, err := repo.Find(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)
	assert.NotNil(t, e.CompletedAt)

	require.NoError(t, repo.UpdateProgress(ctx, user.ID, course.ID, model.NewCourseProgressSummary(1, 2)))
	e, err = repo.Find(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, e.Progress)
	assert.Equal(t, model.EnrollmentEnrolled, e.Status)
	assert.Nil(t, e.CompletedAt)

	list, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Course)
	assert.Equal(t, course.Title, list[0].Course.Title)
}

func TestAssessmentPassedIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, model.Student)
	course := testutil.SeedCourse(t, db)
	as := testutil.SeedAssessments(t, db, course.ID, 2)

	total, err := repo.SumMarks(ctx, as[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.NoError(t, repo.CreateResult(ctx, &model.AssessmentResult{AssessmentID: as[0].ID, UserID: user.ID, Passed: true}))
	require.NoError(t, repo.CreateResult(ctx, &model.AssessmentResult{AssessmentID: as[0].ID, UserID: user.ID, Passed: true}))
	require.NoError(t, repo.CreateResult(ctx, &model.AssessmentResult{AssessmentID: as[1].ID, UserID: user.ID, Passed: false}))

	passed, err := repo.PassedIDs(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{as[0].ID}, passed)

	require.NoError(t, repo.Delete(ctx, as[1].ID))
	questions, err := repo.ListQuestions(ctx, as[1].ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}
