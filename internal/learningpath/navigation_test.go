package learningpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationOverMaterialsOnly(t *testing.T) {
	p := New(materials(3), assessments(1), done("m0", "m1", "m2"))

	nav := p.Navigation(0)
	assert.True(t, nav.HasNext)
	assert.False(t, nav.HasPrevious)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "m1", nav.Next.ID)
	assert.Nil(t, nav.Previous)

	// 最后一个资料后面虽有测验，但测验不参与导航
	nav = p.Navigation(2)
	assert.False(t, nav.HasNext)
	assert.True(t, nav.HasPrevious)
	assert.Equal(t, "m1", nav.Previous.ID)
}

func TestNavigationDoesNotRequireCompletion(t *testing.T) {
	p := New(materials(2), nil, nil)

	assert.True(t, p.HasNext(0))
	next, ok := p.Next(0)
	require.True(t, ok)
	assert.Equal(t, "m1", next.ID)
	assert.False(t, p.IsUnlocked(1))
}

func TestSelectionIsExclusive(t *testing.T) {
	p := New(materials(3), assessments(1), done("m0", "m1", "m2"))

	sel := p.DefaultSelection()
	require.NotNil(t, sel.Material)
	assert.Equal(t, "m0", sel.Material.ID)

	sel, err := p.SelectAssessment(sel, 100)
	require.NoError(t, err)
	assert.Nil(t, sel.Material)
	require.NotNil(t, sel.Assessment)

	sel, err = p.SelectMaterial(sel, "m2")
	require.NoError(t, err)
	assert.Nil(t, sel.Assessment)
	assert.Equal(t, "m2", sel.Material.ID)
}

func TestSelectLockedMaterialRejected(t *testing.T) {
	p := New(materials(3), nil, done("m0"))
	sel := p.DefaultSelection()

	got, err := p.SelectMaterial(sel, "m2")
	assert.ErrorIs(t, err, ErrMaterialLocked)
	assert.Equal(t, sel, got, "selection unchanged on error")

	_, err = p.SelectMaterial(sel, "nope")
	assert.ErrorIs(t, err, ErrMaterialNotInPath)
}

func TestSelectHiddenQuizRejected(t *testing.T) {
	p := New(materials(3), assessments(1), done("m0"))

	_, err := p.SelectAssessment(Selection{}, 100)
	assert.ErrorIs(t, err, ErrQuizNotAvailable)
}
