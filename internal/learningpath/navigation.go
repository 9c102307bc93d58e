package learningpath

import (
	"errors"

	"lms_backend/internal/model"
)

var (
	ErrMaterialNotInPath = errors.New("material not in learning path")
	ErrMaterialLocked    = errors.New("material is locked")
	ErrQuizNotAvailable  = errors.New("quiz not available yet")
)

// 导航只在资料之间进行，测验不参与上一个/下一个

func (p *Path) HasNext(i int) bool {
	return p.inRange(i) && p.inRange(i+1)
}

func (p *Path) HasPrevious(i int) bool {
	return p.inRange(i) && i > 0
}

func (p *Path) Next(i int) (*model.StudyMaterial, bool) {
	if !p.HasNext(i) {
		return nil, false
	}
	return &p.materials[i+1], true
}

func (p *Path) Previous(i int) (*model.StudyMaterial, bool) {
	if !p.HasPrevious(i) {
		return nil, false
	}
	return &p.materials[i-1], true
}

type Navigation struct {
	Index       int                  `json:"index"`
	HasNext     bool                 `json:"hasNext"`
	HasPrevious bool                 `json:"hasPrevious"`
	Next        *model.StudyMaterial `json:"next,omitempty"`
	Previous    *model.StudyMaterial `json:"previous,omitempty"`
}

func (p *Path) Navigation(i int) Navigation {
	nav := Navigation{
		Index:       i,
		HasNext:     p.HasNext(i),
		HasPrevious: p.HasPrevious(i),
	}
	nav.Next, _ = p.Next(i)
	nav.Previous, _ = p.Previous(i)
	return nav
}

// Selection 当前展示的内容，资料和测验互斥
type Selection struct {
	Material   *model.StudyMaterial `json:"material,omitempty"`
	Assessment *model.Assessment    `json:"assessment,omitempty"`
}

func (s Selection) SelectMaterial(m *model.StudyMaterial) Selection {
	return Selection{Material: m}
}

func (s Selection) SelectAssessment(a *model.Assessment) Selection {
	return Selection{Assessment: a}
}

func (s Selection) Empty() bool {
	return s.Material == nil && s.Assessment == nil
}

// SelectMaterial 校验资料存在且已解锁后切换选中项
func (p *Path) SelectMaterial(s Selection, materialID string) (Selection, error) {
	i := p.IndexOf(materialID)
	if i < 0 {
		return s, ErrMaterialNotInPath
	}
	if !p.IsUnlocked(i) {
		return s, ErrMaterialLocked
	}
	return s.SelectMaterial(&p.materials[i]), nil
}

// SelectAssessment 只能选中当前路径上可见的测验
func (p *Path) SelectAssessment(s Selection, assessmentID uint) (Selection, error) {
	for i := range p.materials {
		if a, ok := p.QuizAfter(i); ok && a.ID == assessmentID {
			return s.SelectAssessment(a), nil
		}
	}
	return s, ErrQuizNotAvailable
}

// DefaultSelection 默认选中第一个资料，路径为空时返回空选择
func (p *Path) DefaultSelection() Selection {
	if p.Empty() {
		return Selection{}
	}
	return Selection{}.SelectMaterial(&p.materials[0])
}
