package service

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentQuestionsMaintainTotalMarks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)

	a, err := f.assessments.Create(ctx, course.ID, AssessmentInput{Title: "期中", PassingMarks: 3})
	require.NoError(t, err)

	_, err = f.assessments.AddQuestion(ctx, a.ID, QuestionInput{Content: "only one", Options: []string{"a"}})
	assert.ErrorIs(t, err, util.ErrInvalidQuestion)

	q1, err := f.assessments.AddQuestion(ctx, a.ID, QuestionInput{Content: "q1", Options: []string{"a", "b"}, CorrectOption: 1, Marks: 2})
	require.NoError(t, err)
	_, err = f.assessments.AddQuestion(ctx, a.ID, QuestionInput{Content: "q2", Options: []string{"a", "b", "c"}, CorrectOption: 2, Marks: 3})
	require.NoError(t, err)

	a, err = f.assessments.find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, a.TotalMarks)

	require.NoError(t, f.assessments.DeleteQuestion(ctx, q1.ID))
	a, err = f.assessments.find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, a.TotalMarks)

	_, err = f.assessments.Create(ctx, 9999, AssessmentInput{Title: "x"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestSubmitAssessmentGrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	ms := testutil.SeedMaterials(t, f.db, course.ID, 1)
	a := testutil.SeedAssessments(t, f.db, course.ID, 1)[0]
	sess := f.student(t, course.ID)

	_, err := f.assessments.Submit(ctx, sess, a.ID, nil)
	assert.ErrorIs(t, err, util.ErrQuizNotAvailable)

	f.complete(t, sess, course.ID, ms...)

	view, err := f.assessments.GetForStudent(ctx, sess, a.ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 1)
	assert.Equal(t, []string{"2", "3"}, view.Questions[0].Options)
	qID := view.Questions[0].ID

	res, err := f.assessments.Submit(ctx, sess, a.ID, map[uint]int{qID: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Passed)

	res, err = f.assessments.Submit(ctx, sess, a.ID, map[uint]int{qID: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.TotalMarks)
	assert.True(t, res.Passed)

	outsider := testutil.SeedUser(t, f.db, model.Student)
	_, err = f.assessments.Submit(ctx, model.Session{UserID: outsider.ID, Role: model.Student}, a.ID, nil)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCertificateIssue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	ms := testutil.SeedMaterials(t, f.db, course.ID, 2)
	a := testutil.SeedAssessments(t, f.db, course.ID, 1)[0]
	sess := f.student(t, course.ID)

	_, err := f.certs.Issue(ctx, sess, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)

	f.complete(t, sess, course.ID, ms...)
	_, err = f.certs.Issue(ctx, sess, course.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentsNotPassed)

	view, err := f.assessments.GetForStudent(ctx, sess, a.ID)
	require.NoError(t, err)
	_, err = f.assessments.Submit(ctx, sess, a.ID, map[uint]int{view.Questions[0].ID: 0})
	require.NoError(t, err)

	cert, err := f.certs.Issue(ctx, sess, course.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^CERT-\d{8}-[0-9A-F]{8}$`, cert.CertificateNumber)

	again, err := f.certs.Issue(ctx, sess, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)

	list, err := f.certs.List(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCertificateIgnoresAssessmentsBeyondQuizSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	ms := testutil.SeedMaterials(t, f.db, course.ID, 3)
	as := testutil.SeedAssessments(t, f.db, course.ID, 2)
	sess := f.student(t, course.ID)

	f.complete(t, sess, course.ID, ms...)

	// 3 个资料只有一个测验位，第二个测验不会出现在路径中
	_, err := f.assessments.GetForStudent(ctx, sess, as[1].ID)
	assert.ErrorIs(t, err, util.ErrQuizNotAvailable)

	_, err = f.certs.Issue(ctx, sess, course.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentsNotPassed)

	view, err := f.assessments.GetForStudent(ctx, sess, as[0].ID)
	require.NoError(t, err)
	_, err = f.assessments.Submit(ctx, sess, as[0].ID, map[uint]int{view.Questions[0].ID: 0})
	require.NoError(t, err)

	cert, err := f.certs.Issue(ctx, sess, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, cert.CourseID)
}
