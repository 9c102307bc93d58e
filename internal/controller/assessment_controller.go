package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListAssessments godoc
// @Summary 课程测验列表（管理）
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/admin/courses/{id}/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	list, err := c.AssessmentService.List(ctx.Request.Context(), courseID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// CreateAssessment godoc
// @Summary 新增测验
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.AssessmentInput true "测验信息"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /api/admin/courses/{id}/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.AssessmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assessment, err := c.AssessmentService.Create(ctx.Request.Context(), courseID, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// UpdateAssessment godoc
// @Summary 更新测验
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param assessmentId path int true "测验ID"
// @Param body body service.AssessmentInput true "测验信息"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/admin/assessments/{assessmentId} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "assessmentId")
	if !ok {
		return
	}
	var req service.AssessmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assessment, err := c.AssessmentService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// DeleteAssessment godoc
// @Summary 删除测验
// @Tags 管理员
// @Security ApiKeyAuth
// @Param assessmentId path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/assessments/{assessmentId} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "assessmentId")
	if !ok {
		return
	}
	if err := c.AssessmentService.Delete(ctx.Request.Context(), id); err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListQuestions godoc
// @Summary 测验题目（含答案）
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Param assessmentId path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.AssessmentQuestion}
// @Router /api/admin/assessments/{assessmentId}/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	id, ok := uintParam(ctx, "assessmentId")
	if !ok {
		return
	}
	questions, err := c.AssessmentService.ListQuestions(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// AddQuestion godoc
// @Summary 新增题目
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param assessmentId path int true "测验ID"
// @Param body body service.QuestionInput true "题目"
// @Success 201 {object} util.Response{data=model.AssessmentQuestion}
// @Router /api/admin/assessments/{assessmentId}/questions [post]
func (c *AssessmentController) AddQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "assessmentId")
	if !ok {
		return
	}
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.AssessmentService.AddQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "题目ID"
// @Param body body service.QuestionInput true "题目"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion}
// @Router /api/admin/questions/{questionId} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "questionId")
	if !ok {
		return
	}
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.AssessmentService.UpdateQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 管理员
// @Security ApiKeyAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "questionId")
	if !ok {
		return
	}
	if err := c.AssessmentService.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetAssessment godoc
// @Summary 学生查看测验
// @Description 题目不包含正确答案，附带本人的历史成绩
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.StudentAssessment}
// @Failure 409 {object} util.Response "测验尚未开放"
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	view, err := c.AssessmentService.GetForStudent(ctx.Request.Context(), session(ctx), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SubmitRequest answers 为 题目ID -> 选项下标
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answers map[uint]int `json:"answers" binding:"required"`
}

// SubmitAssessment godoc
// @Summary 提交测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body SubmitRequest true "答案"
// @Success 200 {object} util.Response{data=model.AssessmentResult}
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.AssessmentService.Submit(ctx.Request.Context(), session(ctx), id, req.Answers)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
