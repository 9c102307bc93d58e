package service

import (
	"context"
	"sync"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseProgressSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	ms := testutil.SeedMaterials(t, f.db, course.ID, 5)
	sess := f.student(t, course.ID)

	f.complete(t, sess, course.ID, ms[0], ms[1])

	summary := f.progress.GetCourseProgress(ctx, sess, course.ID)
	assert.Equal(t, model.CourseProgressSummary{Completed: 2, Total: 5, Percentage: 40}, summary)

	empty := testutil.SeedCourse(t, f.db)
	summary = f.progress.GetCourseProgress(ctx, sess, empty.ID)
	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, 0, summary.Total)
}

func TestToggleRoundTripRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, course.ID, 1)[0]
	sess := f.student(t, course.ID)

	assert.Empty(t, f.progress.GetStudyProgress(ctx, sess, course.ID))

	require.True(t, f.progress.ToggleMaterialCompletion(ctx, sess, m.ID, course.ID, false))
	records := f.progress.GetStudyProgress(ctx, sess, course.ID)
	require.Len(t, records, 1)
	assert.True(t, records[0].Completed)
	assert.NotNil(t, records[0].CompletedAt)

	require.True(t, f.progress.ToggleMaterialCompletion(ctx, sess, m.ID, course.ID, true))
	records = f.progress.GetStudyProgress(ctx, sess, course.ID)
	require.Len(t, records, 1)
	assert.False(t, records[0].Completed)
	assert.Nil(t, records[0].CompletedAt)
	assert.Zero(t, f.notifier.count())
}

func TestToggleFailureNotifiesAndReturnsFalse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	other := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, other.ID, 1)[0]
	sess := f.student(t, course.ID)

	assert.False(t, f.progress.ToggleMaterialCompletion(ctx, sess, m.ID, course.ID, false))
	assert.Equal(t, 1, f.notifier.count())
	assert.Equal(t, NotifyError, f.notifier.sent[0].Level)
	assert.Equal(t, sess.UserID, f.notifier.sent[0].UserID)

	assert.False(t, f.progress.ToggleMaterialCompletion(ctx, model.Session{}, m.ID, course.ID, false))
}

func TestReadFailureReturnsEmptyAndNotifies(t *testing.T) {
	f := newFixture(t)
	course := testutil.SeedCourse(t, f.db)
	sess := f.student(t, course.ID)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Equal(t, []model.ProgressRecord{}, f.progress.GetStudyProgress(context.Background(), sess, course.ID))
	assert.Equal(t, model.CourseProgressSummary{}, f.progress.GetCourseProgress(context.Background(), sess, course.ID))
	assert.Equal(t, 2, f.notifier.count())
}

func TestConcurrentIdenticalTogglesLeaveOneRow(t *testing.T) {
	f := newFixture(t)
	course := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, course.ID, 1)[0]
	sess := f.student(t, course.ID)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.progress.ToggleMaterialCompletion(context.Background(), sess, m.ID, course.ID, false)
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
	var count int64
	f.db.Model(&model.ProgressRecord{}).Count(&count)
	assert.EqualValues(t, 1, count)
	records := f.progress.GetStudyProgress(context.Background(), sess, course.ID)
	require.Len(t, records, 1)
	assert.True(t, records[0].Completed)
}

func TestToggleRefreshesEnrollment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	ms := testutil.SeedMaterials(t, f.db, course.ID, 2)
	sess := f.student(t, course.ID)

	f.complete(t, sess, course.ID, ms...)
	e, err := f.enrollments.Find(ctx, sess.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)

	require.True(t, f.progress.ToggleMaterialCompletion(ctx, sess, ms[1].ID, course.ID, true))
	e, err = f.enrollments.Find(ctx, sess.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, e.Progress)
	assert.Equal(t, model.EnrollmentEnrolled, e.Status)
}

func TestToggleSurvivesCallerCancellation(t *testing.T) {
	f := newFixture(t)
	course := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, course.ID, 1)[0]
	sess := f.student(t, course.ID)

	// 发起者已断开，合并在同一次写入上的其他调用者仍应拿到成功结果
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, f.progress.ToggleMaterialCompletion(ctx, sess, m.ID, course.ID, false))
	assert.Zero(t, f.notifier.count())

	records := f.progress.GetStudyProgress(context.Background(), sess, course.ID)
	require.Len(t, records, 1)
	assert.True(t, records[0].Completed)
}
