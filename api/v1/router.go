package v1

import (
	"github.com/animatic-studio/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		authGroup.POST("/logout", Logout)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
	}

	// Project endpoints - protected by AuthMiddleware
	projectGroup := router.Group("/projects")
	projectGroup.Use(middleware.AuthMiddleware())
	{
		projectGroup.GET("", ListProjects)
		projectGroup.POST("", CreateProject)
		projectGroup.GET("/:id", GetProject)
		projectGroup.PUT("/:id", UpdateProject)
		projectGroup.DELETE("/:id", DeleteProject)
		projectGroup.GET("/:id/phases", GetProjectPhases)
		projectGroup.GET("/:id/jobs", ListProjectJobs)
	}

	// Phase endpoints - protected by AuthMiddleware
	phaseGroup := router.Group("/phases")
	phaseGroup.Use(middleware.AuthMiddleware())
	{
		phaseGroup.GET("/:id", GetPhase)
		phaseGroup.PUT("/:id/content", UpdatePhaseContent)
		phaseGroup.POST("/:id/save", SavePhase)
		phaseGroup.POST("/:id/generate", GeneratePhase)
		phaseGroup.GET("/:id/versions", ListPhaseVersions)
		phaseGroup.POST("/:id/versions/:number/restore", RestorePhaseVersion)
		phaseGroup.GET("/:id/timeline", GetPhaseTimeline)
	}

	// Generation job endpoints - protected by AuthMiddleware
	jobGroup := router.Group("/jobs")
	jobGroup.Use(middleware.AuthMiddleware())
	{
		jobGroup.GET("/:id", GetJob)
		jobGroup.GET("/:id/ws", JobProgressWebSocket)
	}

	// Admin endpoints - protected by AdminMiddleware
	adminGroup := router.Group("/admin")
	// Admin middleware reads the role AuthMiddleware put on the context
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/stats", GetPlatformStats)
	}
}
