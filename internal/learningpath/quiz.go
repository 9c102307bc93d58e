package learningpath

import "lms_backend/internal/model"

// QuizSlot 挂在某个资料之后的测验位置
type QuizSlot struct {
	AnchorIndex int               `json:"anchorIndex"`
	Block       int               `json:"block"`
	Assessment  *model.Assessment `json:"assessment,omitempty"`
	Visible     bool              `json:"visible"`
}

// IsQuizAnchor 每 blockSize 个资料的末尾，以及最后一个资料之后都是测验位
func (p *Path) IsQuizAnchor(i int) bool {
	if !p.inRange(i) {
		return false
	}
	return (i+1)%p.blockSize == 0 || i == len(p.materials)-1
}

// assessmentFor 按块序号取测验，测验数量不足时返回 nil
func (p *Path) assessmentFor(i int) *model.Assessment {
	block := i / p.blockSize
	if block >= len(p.assessments) {
		return nil
	}
	return &p.assessments[block]
}

// QuizAfter 返回资料 i 之后应展示的测验。只有锚点资料已完成时才展示，
// 没有对应测验时静默返回 false
func (p *Path) QuizAfter(i int) (*model.Assessment, bool) {
	if !p.IsQuizAnchor(i) || !p.IsCompleted(i) {
		return nil, false
	}
	a := p.assessmentFor(i)
	if a == nil {
		return nil, false
	}
	return a, true
}

// QuizSlots 列出所有测验位（不论是否可见），没有对应测验的位置 Assessment 为 nil
func (p *Path) QuizSlots() []QuizSlot {
	var slots []QuizSlot
	for i := range p.materials {
		if !p.IsQuizAnchor(i) {
			continue
		}
		a := p.assessmentFor(i)
		slots = append(slots, QuizSlot{
			AnchorIndex: i,
			Block:       i / p.blockSize,
			Assessment:  a,
			Visible:     a != nil && p.IsCompleted(i),
		})
	}
	return slots
}

// QuizVisible 判断某个测验当前是否在路径上可见
func (p *Path) QuizVisible(assessmentID uint) bool {
	for i := range p.materials {
		if a, ok := p.QuizAfter(i); ok && a.ID == assessmentID {
			return true
		}
	}
	return false
}

// Item 路径中的一项：资料本身、状态，以及紧随其后的可见测验
type Item struct {
	Index    int                 `json:"index"`
	Material model.StudyMaterial `json:"material"`
	State    State               `json:"state"`
	Quiz     *model.Assessment   `json:"quiz,omitempty"`
}

func (p *Path) Items() []Item {
	items := make([]Item, 0, len(p.materials))
	for i := range p.materials {
		item := Item{
			Index:    i,
			Material: p.materials[i],
			State:    p.State(i),
		}
		if a, ok := p.QuizAfter(i); ok {
			item.Quiz = a
		}
		items = append(items, item)
	}
	return items
}
