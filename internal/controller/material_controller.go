package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// ListMaterials godoc
// @Summary 课程资料列表（管理）
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.StudyMaterial}
// @Router /api/admin/courses/{id}/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	materials, err := c.MaterialService.List(ctx.Request.Context(), courseID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// CreateMaterial godoc
// @Summary 新增学习资料
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.MaterialInput true "资料信息"
// @Success 201 {object} util.Response{data=model.StudyMaterial}
// @Router /api/admin/courses/{id}/materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.MaterialInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	material, err := c.MaterialService.Create(ctx.Request.Context(), courseID, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// UpdateMaterial godoc
// @Summary 更新学习资料
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param materialId path string true "资料ID"
// @Param body body service.MaterialInput true "资料信息"
// @Success 200 {object} util.Response{data=model.StudyMaterial}
// @Router /api/admin/materials/{materialId} [put]
func (c *MaterialController) UpdateMaterial(ctx *gin.Context) {
	var req service.MaterialInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	material, err := c.MaterialService.Update(ctx.Request.Context(), ctx.Param("materialId"), req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// DeleteMaterial godoc
// @Summary 删除学习资料
// @Tags 管理员
// @Security ApiKeyAuth
// @Param materialId path string true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{materialId} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	if err := c.MaterialService.Delete(ctx.Request.Context(), ctx.Param("materialId")); err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadMaterialFile godoc
// @Summary 上传资料文件
// @Description 支持视频、PDF、文本与 Office 文档，视频自动读取时长
// @Tags 管理员
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param materialId path string true "资料ID"
// @Param file formData file true "资料文件"
// @Success 200 {object} util.Response{data=model.StudyMaterial}
// @Router /api/admin/materials/{materialId}/file [post]
func (c *MaterialController) UploadMaterialFile(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "请选择要上传的文件")
		return
	}
	material, err := c.MaterialService.Upload(ctx.Request.Context(), ctx.Param("materialId"), fh)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, material)
}
