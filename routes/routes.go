package routes

import (
	"hackathon-portal-api/controllers"
	"hackathon-portal-api/middleware"
	"hackathon-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/register", controllers.Register)
			public.POST("/auth/login", controllers.Login)

			// Signed resume downloads; the token carries the authorization
			public.GET("/files/resume", controllers.DownloadResume)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Hackathon Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Applications
			protected.POST("/application", controllers.CreateApplication)
			protected.GET("/applications", controllers.GetMyApplications)
			protected.GET("/application/:id", controllers.GetApplication)
			protected.PUT("/application/:id", controllers.UpdateApplication)
			protected.PUT("/application/:id/confirm", controllers.ConfirmApplication)
			protected.GET("/application/:id/resume/url", controllers.GetResumeURL)

			// Judging
			judging := protected.Group("/judging")
			{
				judging.POST("/createjudge", middleware.RequireRole(models.RoleAdmin), controllers.CreateJudge)
				judging.POST("/attachjudge", controllers.AttachJudge)
				judging.POST("/score", controllers.SubmitScore)
				judging.PUT("/score/:scoreId", controllers.UpdateScore)
				judging.GET("/score", controllers.GetMyScores)
				judging.GET("/score/:scoreId", controllers.GetScore)
				judging.GET("/projects", controllers.GetProjectsToJudge)
				judging.GET("/criteria", controllers.GetJudgingCriteria)
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/application", controllers.AdminGetApplications)
				admin.GET("/application/:id", controllers.AdminGetApplication)
				admin.PUT("/application/:id/status", controllers.AdminSetApplicationStatus)
				admin.DELETE("/application/:id", controllers.AdminDeleteApplication)

				admin.POST("/judging/criteria", controllers.AdminCreateJudgingCriteria)
				admin.GET("/judging/scores/:projectId", controllers.AdminGetProjectScores)

				admin.POST("/project", controllers.AdminCreateProject)
				admin.GET("/project", controllers.AdminGetProjects)
				admin.GET("/project/:id", controllers.AdminGetProject)
				admin.PUT("/project/:id", controllers.AdminUpdateProject)
				admin.DELETE("/project/:id", controllers.AdminDeleteProject)
			}
		}
	}
}
