package service

import (
	"context"
	"fmt"
	"io"
	"lms_backend/internal/model"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CourseCatalog 课程导入文件格式
//
//	courses:
//	  - title: Go 入门
//	    published: true
//	    materials:
//	      - {title: 环境搭建, type: markdown, url: https://example.com/setup.md}
//	    assessments:
//	      - title: 第一单元测验
//	        passing_marks: 1
//	        questions:
//	          - {content: "1 + 1 = ?", options: ["2", "3"], answer: 0, marks: 1}
type CourseCatalog struct {
	Courses []CatalogCourse `yaml:"courses"`
}

type CatalogCourse struct {
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Thumbnail   string              `yaml:"thumbnail"`
	Published   bool                `yaml:"published"`
	Materials   []CatalogMaterial   `yaml:"materials"`
	Assessments []CatalogAssessment `yaml:"assessments"`
}

type CatalogMaterial struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	URL         string `yaml:"url"`
	Duration    string `yaml:"duration"`
}

type CatalogAssessment struct {
	Title           string            `yaml:"title"`
	Description     string            `yaml:"description"`
	DurationMinutes int               `yaml:"duration_minutes"`
	PassingMarks    int               `yaml:"passing_marks"`
	Questions       []CatalogQuestion `yaml:"questions"`
}

type CatalogQuestion struct {
	Content string   `yaml:"content"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"`
	Marks   int      `yaml:"marks"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ImportCatalog 在一个事务内导入全部课程，任一条目不合法则全部回滚。
// 资料与测验的 sort_order 取文件中的顺序
func ImportCatalog(ctx context.Context, db *gorm.DB, r io.Reader) ([]model.Course, error) {
	var catalog CourseCatalog
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("解析课程文件失败: %w", err)
	}

	var imported []model.Course
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for ci, c := range catalog.Courses {
			if c.Title == "" {
				return fmt.Errorf("courses[%d]: title is required", ci)
			}
			course := model.Course{
				Title:        c.Title,
				Description:  c.Description,
				ThumbnailURL: c.Thumbnail,
				IsPublished:  c.Published,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for mi, m := range c.Materials {
				mt := model.MaterialType(m.Type)
				if !mt.Valid() {
					return fmt.Errorf("courses[%d].materials[%d]: invalid type %q", ci, mi, m.Type)
				}
				material := model.StudyMaterial{
					CourseID:     course.ID,
					Title:        m.Title,
					Description:  m.Description,
					MaterialType: mt,
					FileURL:      optionalString(m.URL),
					Duration:     optionalString(m.Duration),
					SortOrder:    mi + 1,
				}
				if err := tx.Create(&material).Error; err != nil {
					return err
				}
			}

			for ai, a := range c.Assessments {
				assessment := model.Assessment{
					CourseID:        course.ID,
					Title:           a.Title,
					Description:     a.Description,
					DurationMinutes: a.DurationMinutes,
					PassingMarks:    a.PassingMarks,
					SortOrder:       ai + 1,
				}
				if err := tx.Create(&assessment).Error; err != nil {
					return err
				}

				total := 0
				for qi, q := range a.Questions {
					in := QuestionInput{Content: q.Content, Options: q.Options, CorrectOption: q.Answer, Marks: q.Marks, SortOrder: qi + 1}
					if err := in.validate(); err != nil {
						return fmt.Errorf("courses[%d].assessments[%d].questions[%d]: %w", ci, ai, qi, err)
					}
					question := model.AssessmentQuestion{AssessmentID: assessment.ID}
					if err := in.apply(&question); err != nil {
						return err
					}
					if err := tx.Create(&question).Error; err != nil {
						return err
					}
					total += question.Marks
				}

				if err := tx.Model(&assessment).Update("total_marks", total).Error; err != nil {
					return err
				}
			}

			imported = append(imported, course)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}
