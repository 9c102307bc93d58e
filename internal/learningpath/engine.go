// Package learningpath 根据有序的学习资料、测验和完成记录计算学习路径：
// 哪些资料已解锁、哪些测验应插入在资料之后，以及上一个/下一个的导航关系。
//
// 解锁状态每次都从当前完成记录重新计算，不保存“曾经解锁过”的快照：
// 把第 i 个资料改回未完成，会让第 i+1 个重新上锁。
package learningpath

import (
	"sort"

	"lms_backend/internal/model"
)

// DefaultBlockSize 每多少个资料插入一次测验
const DefaultBlockSize = 3

type State string

const (
	StateLocked    State = "locked"
	StateUnlocked  State = "unlocked"
	StateCompleted State = "completed"
)

type Option func(*Path)

func WithBlockSize(n int) Option {
	return func(p *Path) {
		if n > 0 {
			p.blockSize = n
		}
	}
}

// Path 一门课程对某个学生的学习路径视图，只读
type Path struct {
	materials   []model.StudyMaterial
	assessments []model.Assessment
	completed   map[string]bool
	blockSize   int
}

// New 按 SortOrder 稳定排序后构建路径；records 中只有 Completed=true 的记录参与计算
func New(materials []model.StudyMaterial, assessments []model.Assessment, records []model.ProgressRecord, opts ...Option) *Path {
	p := &Path{
		materials:   append([]model.StudyMaterial(nil), materials...),
		assessments: append([]model.Assessment(nil), assessments...),
		completed:   make(map[string]bool, len(records)),
		blockSize:   DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	sort.SliceStable(p.materials, func(i, j int) bool {
		return p.materials[i].SortOrder < p.materials[j].SortOrder
	})
	sort.SliceStable(p.assessments, func(i, j int) bool {
		return p.assessments[i].SortOrder < p.assessments[j].SortOrder
	})

	for _, r := range records {
		if r.Completed {
			p.completed[r.StudyMaterialID] = true
		}
	}
	return p
}

func (p *Path) Len() int {
	return len(p.materials)
}

func (p *Path) Empty() bool {
	return len(p.materials) == 0
}

func (p *Path) inRange(i int) bool {
	return i >= 0 && i < len(p.materials)
}

func (p *Path) Materials() []model.StudyMaterial {
	return p.materials
}

func (p *Path) Material(i int) (*model.StudyMaterial, bool) {
	if !p.inRange(i) {
		return nil, false
	}
	return &p.materials[i], true
}

// IndexOf 返回资料在路径中的下标，不存在时返回 -1
func (p *Path) IndexOf(materialID string) int {
	for i := range p.materials {
		if p.materials[i].ID == materialID {
			return i
		}
	}
	return -1
}

func (p *Path) IsCompleted(i int) bool {
	if !p.inRange(i) {
		return false
	}
	return p.completed[p.materials[i].ID]
}

// IsUnlocked 第 0 个始终解锁；其余仅当前一个当前处于已完成状态时解锁
func (p *Path) IsUnlocked(i int) bool {
	if !p.inRange(i) {
		return false
	}
	return i == 0 || p.IsCompleted(i-1)
}

func (p *Path) State(i int) State {
	switch {
	case !p.IsUnlocked(i):
		return StateLocked
	case p.IsCompleted(i):
		return StateCompleted
	default:
		return StateUnlocked
	}
}

// CompletedCount 路径中已完成的资料数量
func (p *Path) CompletedCount() int {
	n := 0
	for i := range p.materials {
		if p.IsCompleted(i) {
			n++
		}
	}
	return n
}

func (p *Path) Summary() model.CourseProgressSummary {
	return model.NewCourseProgressSummary(p.CompletedCount(), p.Len())
}
