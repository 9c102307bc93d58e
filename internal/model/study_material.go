package model

type MaterialType string

const (
	MaterialVideo    MaterialType = "video"
	MaterialPDF      MaterialType = "pdf"
	MaterialMarkdown MaterialType = "markdown"
	MaterialDocument MaterialType = "document"
	MaterialLink     MaterialType = "link"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialVideo, MaterialPDF, MaterialMarkdown, MaterialDocument, MaterialLink:
		return true
	}
	return false
}

// StudyMaterial 课程中的一个学习单元，SortOrder 决定解锁顺序
// swagger:model StudyMaterial
type StudyMaterial struct {
	UUIDBase
	CourseID     uint         `gorm:"index;not null" json:"courseId"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	MaterialType MaterialType `gorm:"size:20;not null" json:"materialType"`
	FileURL      *string      `gorm:"size:1024" json:"fileUrl,omitempty"`
	Duration     *string      `gorm:"size:32" json:"duration,omitempty"`
	SortOrder    int          `gorm:"default:0;index" json:"sortOrder"`
}

func (StudyMaterial) TableName() string {
	return "study_materials"
}
