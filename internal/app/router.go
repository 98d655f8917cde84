package app

import (
	"class_connect_backend/docs"
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/middleware"
	"class_connect_backend/internal/model"

	"class_connect_backend/pkg/monitoring"

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
		authGroup.GET("/profile", c.auth.GetProfile)

		a.registerTeacherRoutes(authGroup, c)
	}

	// 3. 管理相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/teacher/register", c.auth.RegisterTeacher)
			auth.POST("/teacher/login", c.auth.LoginTeacher)
			auth.POST("/student/register", c.auth.RegisterStudent)
			auth.POST("/student/login", c.auth.LoginStudent)
		}
	}

	// 加入会话：访客无需登录，已登录学生通过可选认证识别
	join := router.Group("/api/public/join")
	join.Use(middleware.TryAuthMiddleware(a.Config))
	{
		join.GET("/:token", c.public.JoinInfo)
		join.POST("/:token/submit", c.public.Submit)
		join.GET("/:token/profile", c.public.GetProfile)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.TeacherRole))
	{
		// 问卷模板
		teacher.POST("/surveys", c.survey.CreateTemplate)
		teacher.GET("/surveys", c.survey.ListTemplates)
		teacher.GET("/surveys/:id", c.survey.GetTemplate)
		teacher.PUT("/surveys/:id", c.survey.UpdateTemplate)
		teacher.DELETE("/surveys/:id", c.survey.DeleteTemplate)

		// 课程
		teacher.POST("/courses", c.course.CreateCourse)
		teacher.GET("/courses", c.course.ListCourses)
		teacher.GET("/courses/:id", c.course.GetCourse)
		teacher.PUT("/courses/:id", c.course.UpdateCourse)
		teacher.DELETE("/courses/:id", c.course.DeleteCourse)

		// 课程画像
		teacher.GET("/courses/:id/profiles/summary", c.course.GetProfileSummary)
		teacher.GET("/courses/:id/profiles/history", c.course.GetProfileHistory)

		// 课堂活动
		teacher.POST("/courses/:id/activities", c.activity.CreateActivity)
		teacher.GET("/courses/:id/activities", c.activity.ListActivities)
		teacher.PUT("/activities/:id", c.activity.UpdateActivity)
		teacher.DELETE("/activities/:id", c.activity.DeleteActivity)

		// 推荐映射
		teacher.GET("/courses/:id/recommendations", c.recommendation.ListMappings)
		teacher.PATCH("/courses/:id/recommendations", c.recommendation.PatchMappings)
		teacher.POST("/courses/:id/recommendations/propose", c.recommendation.ProposeMappings)

		// 课堂会话
		teacher.POST("/courses/:id/sessions", c.session.CreateSession)
		teacher.GET("/courses/:id/sessions", c.session.ListSessions)
		teacher.POST("/sessions/:id/close", c.session.CloseSession)
		teacher.GET("/sessions/:id/submissions", c.session.ListSubmissions)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.TeacherRole))
	{
		admin.POST("/reset", c.maintenance.ResetData)
	}
}
