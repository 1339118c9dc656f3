package app

import (
	"quizhub_backend/docs"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/middleware"
	"quizhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	sessions := a.services.session

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 登出对游客也是幂等的，带可选认证以便吊销会话
		public.GET("/logout", middleware.TryAuthMiddleware(cfg, sessions), c.auth.Logout)

		// 全量测验数据接口历史上不做鉴权，保持对外契约
		public.POST("/quizzes/display", c.quiz.DisplayQuizzes)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, sessions), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		// 测验
		authGroup.GET("/quizzes", c.quiz.ListQuizzes)
		authGroup.POST("/quizzes", c.quiz.CreateQuiz)
		authGroup.GET("/quizzes/attempts", c.attempt.ListAttempts)
		authGroup.POST("/quizzes/submit", c.attempt.SubmitQuiz)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
	}
}
