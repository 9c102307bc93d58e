package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseVisibilityAndEnroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := model.Session{UserID: testutil.SeedUser(t, f.db, model.Admin).ID, Role: model.Admin}
	student := model.Session{UserID: testutil.SeedUser(t, f.db, model.Student).ID, Role: model.Student}

	draft, err := f.courses.Create(ctx, CourseInput{Title: "草稿"})
	require.NoError(t, err)
	published, err := f.courses.Create(ctx, CourseInput{Title: "已发布", IsPublished: true})
	require.NoError(t, err)

	_, err = f.courses.Get(ctx, student, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = f.courses.Get(ctx, admin, draft.ID)
	assert.NoError(t, err)

	page, err := f.courses.List(ctx, student, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	page, err = f.courses.List(ctx, admin, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	_, err = f.courses.Enroll(ctx, student, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	e, err := f.courses.Enroll(ctx, student, published.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, e.Status)
	_, err = f.courses.Enroll(ctx, student, published.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	list, err := f.courses.ListEnrollments(ctx, student)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := f.courses.Update(ctx, draft.ID, CourseInput{Title: "改名", IsPublished: true})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	require.NoError(t, f.courses.Delete(ctx, draft.ID))
	assert.ErrorIs(t, f.courses.Delete(ctx, draft.ID), util.ErrCourseNotFound)
}

func TestMaterialCreateDefaultsSortOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)

	_, err := f.materials.Create(ctx, course.ID, MaterialInput{Title: "x", MaterialType: "slides"})
	assert.ErrorIs(t, err, util.ErrInvalidMaterialType)

	m1, err := f.materials.Create(ctx, course.ID, MaterialInput{Title: "one", MaterialType: model.MaterialMarkdown})
	require.NoError(t, err)
	m2, err := f.materials.Create(ctx, course.ID, MaterialInput{Title: "two", MaterialType: model.MaterialPDF})
	require.NoError(t, err)
	assert.Equal(t, 1, m1.SortOrder)
	assert.Equal(t, 2, m2.SortOrder)

	list, err := f.materials.List(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.materials.Delete(ctx, m1.ID))
	assert.ErrorIs(t, f.materials.Delete(ctx, m1.ID), util.ErrMaterialNotFound)
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestMaterialUploadToLocalStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, course.ID, 1)[0]

	updated, err := f.materials.Upload(ctx, m.ID, fileHeader(t, "notes.md", []byte("# Notes\n\nplain text body for the lesson")))
	require.NoError(t, err)
	require.NotNil(t, updated.FileURL)
	assert.True(t, strings.HasPrefix(*updated.FileURL, "/uploads/materials/"))
	assert.Nil(t, updated.Duration)

	rel := strings.TrimPrefix(*updated.FileURL, "/uploads/")
	_, err = os.Stat(filepath.Join(f.cfg.Storage.LocalPath, rel))
	assert.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err = f.materials.Upload(ctx, m.ID, fileHeader(t, "pic.png", png))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)
}

func TestMaterialUploadVideoProbesDuration(t *testing.T) {
	f := newFixture(t)
	f.materials.probeDuration = func(string) (float64, error) { return 125, nil }
	course := testutil.SeedCourse(t, f.db)
	m := testutil.SeedMaterials(t, f.db, course.ID, 1)[0]

	mp4 := append([]byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom"), bytes.Repeat([]byte{0}, 64)...)
	updated, err := f.materials.Upload(context.Background(), m.ID, fileHeader(t, "lesson.mp4", mp4))
	require.NoError(t, err)
	require.NotNil(t, updated.Duration)
	assert.Equal(t, "02:05", *updated.Duration)
	assert.True(t, strings.HasSuffix(*updated.FileURL, ".mp4"))
}
