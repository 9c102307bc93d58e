package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// IssueCertificate godoc
// @Summary 申请结业证书
// @Description 资料全部完成且全部测验通过后颁发，重复申请返回同一张证书
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 409 {object} util.Response "条件未满足"
// @Router /api/courses/{id}/certificate [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	courseID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	cert, err := c.CertificateService.Issue(ctx.Request.Context(), session(ctx), courseID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}

// ListCertificates godoc
// @Summary 我的证书
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	certs, err := c.CertificateService.List(ctx.Request.Context(), session(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}
