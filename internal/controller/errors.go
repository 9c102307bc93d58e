package controller

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{util.ErrUnauthorized, http.StatusUnauthorized},
	{util.ErrInvalidCredentials, http.StatusUnauthorized},
	{util.ErrPermissionDenied, http.StatusForbidden},
	{util.ErrNotEnrolled, http.StatusForbidden},
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrCourseNotFound, http.StatusNotFound},
	{util.ErrMaterialNotFound, http.StatusNotFound},
	{util.ErrAssessmentNotFound, http.StatusNotFound},
	{util.ErrEmailRegistered, http.StatusConflict},
	{util.ErrAlreadyEnrolled, http.StatusConflict},
	{util.ErrMaterialLocked, http.StatusConflict},
	{util.ErrQuizNotAvailable, http.StatusConflict},
	{util.ErrCourseNotPublished, http.StatusConflict},
	{util.ErrCourseNotCompleted, http.StatusConflict},
	{util.ErrAssessmentsNotPassed, http.StatusConflict},
	{util.ErrInvalidMaterialType, http.StatusBadRequest},
	{util.ErrInvalidFileType, http.StatusBadRequest},
	{util.ErrInvalidContentURL, http.StatusBadRequest},
	{util.ErrInvalidQuestion, http.StatusBadRequest},
	{util.ErrProgressUpdateFailed, http.StatusInternalServerError},
}

// handleError 业务错误映射为对应状态码，其余按 500 处理并记录日志
func handleError(ctx *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			util.Error(ctx, e.status, e.err.Error())
			return
		}
	}
	util.LogInternalError(ctx, err)
}

// session 鉴权中间件之后调用；未登录时返回零值
func session(ctx *gin.Context) model.Session {
	sess, _ := util.SessionFromContext(ctx)
	return sess
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
