package service

import (
	"context"
	"errors"
	"io"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"mime/multipart"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialService struct {
	CourseRepo   *repository.CourseRepository
	MaterialRepo *repository.StudyMaterialRepository
	Storage      *StorageService
	Content      *ContentService

	// 测试中可替换
	probeDuration func(path string) (float64, error)
}

func NewMaterialService(
	courseRepo *repository.CourseRepository,
	materialRepo *repository.StudyMaterialRepository,
	storage *StorageService,
	content *ContentService,
) *MaterialService {
	return &MaterialService{
		CourseRepo:    courseRepo,
		MaterialRepo:  materialRepo,
		Storage:       storage,
		Content:       content,
		probeDuration: util.ProbeDuration,
	}
}

type MaterialInput struct {
	Title        string             `json:"title" binding:"required,max=255"`
	Description  string             `json:"description"`
	MaterialType model.MaterialType `json:"materialType" binding:"required"`
	FileURL      *string            `json:"fileUrl"`
	Duration     *string            `json:"duration"`
	SortOrder    *int               `json:"sortOrder"`
}

func (s *MaterialService) List(ctx context.Context, courseID uint) ([]model.StudyMaterial, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.MaterialRepo.ListByCourse(ctx, courseID)
}

func (s *MaterialService) Create(ctx context.Context, courseID uint, in MaterialInput) (*model.StudyMaterial, error) {
	if !in.MaterialType.Valid() {
		return nil, util.ErrInvalidMaterialType
	}
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	material := &model.StudyMaterial{
		CourseID:     courseID,
		Title:        in.Title,
		Description:  in.Description,
		MaterialType: in.MaterialType,
		FileURL:      in.FileURL,
		Duration:     in.Duration,
	}
	if in.SortOrder != nil {
		material.SortOrder = *in.SortOrder
	} else {
		next, err := s.MaterialRepo.NextSortOrder(ctx, courseID)
		if err != nil {
			return nil, err
		}
		material.SortOrder = next
	}

	if err := s.MaterialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) find(ctx context.Context, id string) (*model.StudyMaterial, error) {
	material, err := s.MaterialRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Update(ctx context.Context, id string, in MaterialInput) (*model.StudyMaterial, error) {
	if !in.MaterialType.Valid() {
		return nil, util.ErrInvalidMaterialType
	}
	material, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if material.FileURL != nil && s.Content != nil {
		s.Content.Invalidate(ctx, *material.FileURL)
	}

	material.Title = in.Title
	material.Description = in.Description
	material.MaterialType = in.MaterialType
	material.FileURL = in.FileURL
	material.Duration = in.Duration
	if in.SortOrder != nil {
		material.SortOrder = *in.SortOrder
	}

	if err := s.MaterialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.MaterialRepo.Delete(ctx, id)
}

// Upload 保存上传的资料文件：按内容识别 MIME，视频在时长为空时用 ffprobe 补全
func (s *MaterialService) Upload(ctx context.Context, id string, fh *multipart.FileHeader) (*model.StudyMaterial, error) {
	material, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "material-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	mimeType, err := util.DetectMimeType(tmp, util.AllowedMaterialMimeTypes)
	if err != nil {
		return nil, err
	}

	if util.IsVideo(mimeType) && material.Duration == nil {
		if seconds, err := s.probeDuration(tmp.Name()); err != nil {
			logger.Log.Warn("读取视频时长失败", zap.String("materialID", id), zap.Error(err))
		} else {
			d := util.FormatDuration(seconds)
			material.Duration = &d
		}
	}

	fileURL, err := s.Storage.UploadFile(ctx, MaterialObjectKey(material.CourseID, fh.Filename), tmp.Name(), mimeType)
	if err != nil {
		return nil, err
	}
	material.FileURL = &fileURL

	if err := s.MaterialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}
