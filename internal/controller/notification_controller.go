package controller

import (
	"context"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationDrainer interface {
	Drain(ctx context.Context, userID uint) ([]service.Notification, error)
}

type NotificationController struct {
	Drainer NotificationDrainer
}

// NewNotificationController drainer 为 nil 时（未启用 Redis）始终返回空列表
func NewNotificationController(drainer NotificationDrainer) *NotificationController {
	return &NotificationController{Drainer: drainer}
}

// ListNotifications godoc
// @Summary 取出待展示的提示消息
// @Description 返回后即清空
// @Tags 通知
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.Notification}
// @Router /api/notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	if c.Drainer == nil {
		util.Success(ctx, []service.Notification{})
		return
	}
	items, err := c.Drainer.Drain(ctx.Request.Context(), session(ctx).UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
