package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grant-management-api/controllers"
	"grant-management-api/middleware"
	"grant-management-api/models"
)

func SetupRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Grant Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.POST("/profile/picture", controllers.UploadProfilePicture)

			// Lookups (read for everyone, managed by admins)
			protected.GET("/faculties", controllers.GetFaculties)
			protected.GET("/research-areas", controllers.GetResearchAreas)
			protected.POST("/faculties", middleware.RequireRole(models.RoleAdmin), controllers.CreateFaculty)
			protected.PUT("/faculties/:id", middleware.RequireRole(models.RoleAdmin), controllers.RenameFaculty)
			protected.POST("/research-areas", middleware.RequireRole(models.RoleAdmin), controllers.CreateResearchArea)
			protected.PUT("/research-areas/:id", middleware.RequireRole(models.RoleAdmin), controllers.RenameResearchArea)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread-count", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Users (admin management + assignment pickers)
			protected.POST("/users", middleware.RequireRole(models.RoleAdmin), controllers.CreateUser)
			protected.GET("/users", middleware.RequireRole(models.RoleAdmin), controllers.GetUsers)
			protected.PUT("/users/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateUser)
			protected.DELETE("/users/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteUser)

			// Grant cycles
			cycles := protected.Group("/cycles")
			{
				cycles.GET("", controllers.GetCycles)
				cycles.GET("/:id", controllers.GetCycle)
				cycles.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateCycle)
				cycles.PUT("/:id/toggle", middleware.RequireRole(models.RoleAdmin), controllers.ToggleCycle)

				// Researchers submit into a cycle
				cycles.POST("/:id/proposals", middleware.RequireRole(models.RoleResearcher), controllers.CreateProposal)
			}

			// Proposals
			proposals := protected.Group("/proposals")
			{
				proposals.GET("", controllers.GetProposals)
				proposals.GET("/:id", controllers.GetProposal)
				proposals.GET("/:id/versions", controllers.GetProposalVersions)
				proposals.GET("/:id/document", controllers.DownloadProposalDocument)
				proposals.GET("/:id/reports", controllers.GetProgressReports)

				// Researcher (owner) operations
				proposals.PUT("/:id", middleware.RequireRole(models.RoleResearcher), controllers.UpdateProposal)
				proposals.POST("/:id/revert", middleware.RequireRole(models.RoleResearcher), controllers.RevertProposal)
				proposals.POST("/:id/withdraw", middleware.RequireRole(models.RoleResearcher), controllers.WithdrawProposal)
				proposals.POST("/:id/extension-request", middleware.RequireRole(models.RoleResearcher), controllers.RequestDeadlineExtension)
				proposals.POST("/:id/reports", middleware.RequireRole(models.RoleResearcher), controllers.SubmitProgressReport)

				// Admin operations
				proposals.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), controllers.AssignEvaluators)
				proposals.POST("/:id/deadlines", middleware.RequireRole(models.RoleAdmin), controllers.SetProposalDeadline)

				// Reviewer operations
				proposals.POST("/:id/screen", middleware.RequireRole(models.RoleReviewer), controllers.ScreenProposal)
				proposals.GET("/:id/evaluation/draft", middleware.RequireRole(models.RoleReviewer), controllers.GetEvaluationDraft)
				proposals.PUT("/:id/evaluation/draft", middleware.RequireRole(models.RoleReviewer), controllers.SaveEvaluationDraft)
				proposals.POST("/:id/evaluation", middleware.RequireRole(models.RoleReviewer), controllers.SubmitEvaluation)

				// HOD operations
				proposals.POST("/:id/decision", middleware.RequireRole(models.RoleHOD), controllers.DecideProposal)
				proposals.POST("/:id/grant", middleware.RequireRole(models.RoleHOD), controllers.AllocateGrant)
				proposals.PUT("/:id/project-status", middleware.RequireRole(models.RoleHOD), controllers.UpdateProjectStatus)
			}

			// Progress report review (HOD)
			protected.PUT("/reports/:id/review", middleware.RequireRole(models.RoleHOD), controllers.ReviewProgressReport)

			// Budget ledger
			budgets := protected.Group("/budgets")
			{
				budgets.GET("/summary", middleware.RequireRole(models.RoleAdmin, models.RoleHOD), controllers.GetBudgetSummary)
				budgets.GET("", middleware.RequireRole(models.RoleAdmin, models.RoleHOD), controllers.GetBudgets)
				budgets.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateBudget)
				budgets.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateBudget)
				budgets.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteBudget)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
