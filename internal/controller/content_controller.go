package controller

import (
	"errors"
	"lms_backend/internal/markdown"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// RenderMarkdown godoc
// @Summary 渲染 Markdown 资料
// @Description 拉取文本资料并渲染为 HTML；失败时 data 中返回失败的 url
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param url query string true "资料地址"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "地址不合法或指向内网"
// @Failure 404 {object} util.Response "资料不存在"
// @Failure 422 {object} util.Response "资料内容为空"
// @Failure 502 {object} util.Response "拉取失败"
// @Router /api/content/markdown [get]
func (c *ContentController) RenderMarkdown(ctx *gin.Context) {
	url := ctx.Query("url")
	if url == "" {
		util.BadRequest(ctx, "url is required")
		return
	}

	html, err := c.ContentService.RenderURL(ctx.Request.Context(), url)
	if err == nil {
		util.Success(ctx, gin.H{"html": html})
		return
	}

	if errors.Is(err, markdown.ErrDisallowedAddress) {
		util.ErrorWithData(ctx, http.StatusBadRequest, "url host is not allowed", gin.H{"error": err.Error(), "url": url})
		return
	}

	fe, ok := markdown.AsContentFetchError(err)
	if !ok {
		handleError(ctx, err)
		return
	}

	status := http.StatusBadGateway
	var nf *markdown.NotFoundError
	var empty *markdown.EmptyContentError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &empty):
		status = http.StatusUnprocessableEntity
	}
	util.ErrorWithData(ctx, status, fe.Error(), gin.H{"error": fe.Error(), "url": fe.FailedURL()})
}
