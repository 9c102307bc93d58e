package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	LearningService *service.LearningService
	ProgressService *service.ProgressService
}

func NewLearningPathController(learningService *service.LearningService, progressService *service.ProgressService) *LearningPathController {
	return &LearningPathController{
		LearningService: learningService,
		ProgressService: progressService,
	}
}

// GetLearningPath godoc
// @Summary 课程学习路径
// @Description 资料按顺序解锁，每 3 个资料后插入一次测验；可通过 materialId 或 assessmentId 指定选中项
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param materialId query string false "选中的资料"
// @Param assessmentId query int false "选中的测验"
// @Success 200 {object} util.Response{data=service.LearningPathView}
// @Failure 403 {object} util.Response "未报名"
// @Failure 409 {object} util.Response "资料未解锁或测验不可用"
// @Router /api/courses/{id}/learning-path [get]
func (c *LearningPathController) GetLearningPath(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	req := service.SelectionRequest{
		MaterialID:   ctx.Query("materialId"),
		AssessmentID: util.MustParseUint(ctx.Query("assessmentId")),
	}

	view, err := c.LearningService.GetLearningPath(ctx.Request.Context(), session(ctx), courseID, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetNavigation godoc
// @Summary 资料导航
// @Description canGoNext 仅在当前资料已完成且存在下一项时为 true
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param materialId path string true "资料ID"
// @Success 200 {object} util.Response{data=service.NavigationView}
// @Router /api/courses/{id}/materials/{materialId}/navigation [get]
func (c *LearningPathController) GetNavigation(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	view, err := c.LearningService.GetNavigation(ctx.Request.Context(), session(ctx), courseID, ctx.Param("materialId"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ToggleRequest currentStatus 为客户端当前看到的完成状态
// swagger:model ToggleRequest
type ToggleRequest struct {
	CurrentStatus *bool `json:"currentStatus" binding:"required"`
}

// ToggleMaterial godoc
// @Summary 切换资料完成状态
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param materialId path string true "资料ID"
// @Param body body ToggleRequest true "当前状态"
// @Success 200 {object} util.Response{data=service.ToggleResult}
// @Failure 409 {object} util.Response "资料未解锁"
// @Failure 500 {object} util.Response "进度更新失败"
// @Router /api/courses/{id}/materials/{materialId}/toggle [post]
func (c *LearningPathController) ToggleMaterial(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.LearningService.ToggleMaterial(ctx.Request.Context(), session(ctx), courseID, ctx.Param("materialId"), *req.CurrentStatus)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary 课程进度记录
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.ProgressRecord}
// @Router /api/courses/{id}/progress [get]
func (c *LearningPathController) GetProgress(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	util.Success(ctx, c.ProgressService.GetStudyProgress(ctx.Request.Context(), session(ctx), courseID))
}

// GetProgressSummary godoc
// @Summary 课程完成度
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseProgressSummary}
// @Router /api/courses/{id}/progress/summary [get]
func (c *LearningPathController) GetProgressSummary(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	util.Success(ctx, c.ProgressService.GetCourseProgress(ctx.Request.Context(), session(ctx), courseID))
}
