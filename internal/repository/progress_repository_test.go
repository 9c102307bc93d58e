package repository

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, model.Student)
	course := testutil.SeedCourse(t, db)
	m := testutil.SeedMaterials(t, db, course.ID, 1)[0]

	rec, err := repo.Toggle(ctx, user.ID, course.ID, m.ID, false)
	require.NoError(t, err)
	assert.True(t, rec.Completed)
	require.NotNil(t, rec.CompletedAt)
	firstID := rec.ID

	rec, err = repo.Toggle(ctx, user.ID, course.ID, m.ID, true)
	require.NoError(t, err)
	assert.False(t, rec.Completed)
	assert.Nil(t, rec.CompletedAt)
	assert.Equal(t, firstID, rec.ID, "row updated in place")

	stored, err := repo.Find(ctx, user.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.CompletedAt)

	var count int64
	db.Model(&model.ProgressRecord{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestToggleWithoutRowAndTrueStatusCreatesIncomplete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)

	user := testutil.SeedUser(t, db, model.Student)
	course := testutil.SeedCourse(t, db)
	m := testutil.SeedMaterials(t, db, course.ID, 1)[0]

	rec, err := repo.Toggle(context.Background(), user.ID, course.ID, m.ID, true)
	require.NoError(t, err)
	assert.False(t, rec.Completed)
	assert.Nil(t, rec.CompletedAt)
}

func TestToggleMaterialOutsideCourse(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)

	user := testutil.SeedUser(t, db, model.Student)
	c1 := testutil.SeedCourse(t, db)
	c2 := testutil.SeedCourse(t, db)
	m := testutil.SeedMaterials(t, db, c1.ID, 1)[0]

	_, err := repo.Toggle(context.Background(), user.ID, c2.ID, m.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&model.ProgressRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestListAndCountScopedToCourse(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, model.Student)
	other := testutil.SeedUser(t, db, model.Student)
	c1 := testutil.SeedCourse(t, db)
	c2 := testutil.SeedCourse(t, db)
	ms := testutil.SeedMaterials(t, db, c1.ID, 5)
	foreign := testutil.SeedMaterials(t, db, c2.ID, 1)[0]

	for _, m := range ms[:2] {
		_, err := repo.Toggle(ctx, user.ID, c1.ID, m.ID, false)
		require.NoError(t, err)
	}
	_, err := repo.Toggle(ctx, user.ID, c1.ID, ms[2].ID, true)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, user.ID, c2.ID, foreign.ID, false)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, other.ID, c1.ID, ms[3].ID, false)
	require.NoError(t, err)

	records, err := repo.ListByUserAndCourse(ctx, user.ID, c1.ID)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	completed, err := repo.CountCompleted(ctx, user.ID, c1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, completed)

	// 资料被删除后不再计入
	require.NoError(t, NewStudyMaterialRepository(db).Delete(ctx, ms[0].ID))
	completed, err = repo.CountCompleted(ctx, user.ID, c1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, completed)
}
