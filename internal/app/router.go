package app

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 游客可浏览已发布课程，管理员登录后可见草稿
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)
	group.GET("/enrollments", c.course.ListEnrollments)
	group.GET("/notifications", c.notification.ListNotifications)
	group.GET("/certificates", c.certificate.ListCertificates)

	courses := group.Group("/courses/:id")
	{
		courses.POST("/enroll", c.course.Enroll)
		courses.GET("/learning-path", c.learningPath.GetLearningPath)
		courses.GET("/materials/:materialId/navigation", c.learningPath.GetNavigation)
		courses.POST("/materials/:materialId/toggle", c.learningPath.ToggleMaterial)
		courses.GET("/progress", c.learningPath.GetProgress)
		courses.GET("/progress/summary", c.learningPath.GetProgressSummary)
		courses.POST("/certificate", c.certificate.IssueCertificate)
	}

	assessments := group.Group("/assessments")
	{
		assessments.GET("/:id", c.assessment.GetAssessment)
		assessments.POST("/:id/submit", c.assessment.SubmitAssessment)
	}

	group.GET("/content/markdown", c.content.RenderMarkdown)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)

		admin.GET("/courses/:id/materials", c.material.ListMaterials)
		admin.POST("/courses/:id/materials", c.material.CreateMaterial)
		admin.PUT("/courses/:id/materials/:materialId", c.material.UpdateMaterial)
		admin.DELETE("/courses/:id/materials/:materialId", c.material.DeleteMaterial)
		admin.POST("/courses/:id/materials/:materialId/file", c.material.UploadMaterialFile)

		admin.GET("/courses/:id/assessments", c.assessment.ListAssessments)
		admin.POST("/courses/:id/assessments", c.assessment.CreateAssessment)
		admin.PUT("/courses/:id/assessments/:assessmentId", c.assessment.UpdateAssessment)
		admin.DELETE("/courses/:id/assessments/:assessmentId", c.assessment.DeleteAssessment)
		admin.GET("/courses/:id/assessments/:assessmentId/questions", c.assessment.ListQuestions)
		admin.POST("/courses/:id/assessments/:assessmentId/questions", c.assessment.AddQuestion)
		admin.PUT("/courses/:id/assessments/:assessmentId/questions/:questionId", c.assessment.UpdateQuestion)
		admin.DELETE("/courses/:id/assessments/:assessmentId/questions/:questionId", c.assessment.DeleteQuestion)
	}
}
