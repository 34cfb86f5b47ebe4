package app

import (
	"studyhub_backend/docs"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

// 浏览类接口不要求登录，目录和课程内容对游客可见
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.GET("/categories", c.content.ListCategories)
		public.GET("/categories/:id/path", c.content.GetCategoryPath)
		public.GET("/courses", c.content.ListCourses)
		public.GET("/courses/:id", c.content.GetCourse)
		public.GET("/courses/:id/sections", c.content.ListSections)
		public.GET("/courses/:id/teachers", c.content.ListTeachers)
		public.GET("/sections/:id/steps", c.content.ListSteps)
		public.GET("/steps/:id/task", c.task.GetTask)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	// 选课
	group.POST("/courses/:id/enroll", c.content.Enroll)
	group.DELETE("/courses/:id/enroll", c.content.Withdraw)

	// 作答
	group.POST("/steps/:id/attempts", c.attempt.SubmitAttempt)
	group.GET("/steps/:id/attempts", c.attempt.ListStepAttempts)
	group.GET("/attempts", c.attempt.ListMyAttempts)
	group.GET("/attempts/:id", c.attempt.GetAttempt)

	// 同伴互评
	group.GET("/reviews/pending", c.review.ListPending)
	group.POST("/attempts/:id/reviews", c.review.SubmitReview)
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		// 内容树维护
		teacher.POST("/categories", c.content.CreateCategory)
		teacher.PUT("/categories/:id", c.content.RenameCategory)
		teacher.PUT("/categories/:id/move", c.content.MoveCategory)
		teacher.DELETE("/categories/:id", c.content.DeleteCategory)
		teacher.POST("/courses", c.content.CreateCourse)
		teacher.PUT("/courses/:id", c.content.UpdateCourse)
		teacher.DELETE("/courses/:id", c.content.DeleteCourse)
		teacher.POST("/courses/:id/teachers", c.content.AssignTeacher)
		teacher.GET("/courses/:id/students", c.content.ListStudents)
		teacher.POST("/sections", c.content.CreateSection)
		teacher.PUT("/sections/:id", c.content.UpdateSection)
		teacher.DELETE("/sections/:id", c.content.DeleteSection)
		teacher.POST("/steps", c.content.CreateStep)
		teacher.PUT("/steps/:id", c.content.UpdateStep)
		teacher.DELETE("/steps/:id", c.content.DeleteStep)
		teacher.POST("/steps/:id/attachments", c.content.UploadStepAttachment)

		// 任务编排
		teacher.POST("/steps/:id/task", c.task.AttachTask)
		teacher.PUT("/test-tasks/:id/options", c.task.ReplaceTestOptions)
		teacher.POST("/test-tasks/:id/options", c.task.AddTestOption)
		teacher.PUT("/test-tasks/:id/options/:optionId/correct", c.task.SetCorrectTestOption)
		teacher.GET("/test-tasks/:id/options", c.task.ListTestOptions)
		teacher.PUT("/sorting-tasks/:id/options", c.task.ReplaceSortingOptions)
		teacher.GET("/sorting-tasks/:id/options", c.task.ListSortingOptions)

		// 某提交收到的评审明细
		teacher.GET("/attempts/:id/reviews", c.review.ListReviews)
	}
}
