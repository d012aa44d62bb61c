package main

import (
	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/handlers"
	"github.com/gymsuite/backend/internal/middleware"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/policy"
	"github.com/gymsuite/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(svc.cfg.RateLimit.RPS, svc.cfg.RateLimit.Burst))
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/forgot-password", svc.authHandler.ForgotPassword)
			auth.POST("/reset-password", svc.authHandler.ResetPassword)
			auth.POST("/resend-verification", svc.authHandler.ResendVerification)
			auth.GET("/verify-email", svc.authHandler.VerifyEmail)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.Auth(svc.authService))
		{
			// Session
			protected.GET("/auth/user", svc.authHandler.CurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Verified-only resource surface
			verified := protected.Group("")
			verified.Use(middleware.RequireVerified())
			{
				gymHandler := handlers.NewGymHandler(db)
				verified.GET("/gyms", gymHandler.List)
				verified.GET("/gyms/:id", gymHandler.GetByID)
				verified.POST("/gyms", gymHandler.Create)
				verified.PUT("/gyms/:id", gymHandler.Update)
				verified.DELETE("/gyms/:id", gymHandler.Delete)

				locationHandler := handlers.NewLocationHandler(db)
				verified.GET("/locations", locationHandler.List)
				verified.GET("/locations/:id", locationHandler.GetByID)
				verified.POST("/locations", locationHandler.Create)
				verified.PUT("/locations/:id", locationHandler.Update)
				verified.DELETE("/locations/:id", locationHandler.Delete)

				groupHandler := handlers.NewGroupHandler(db)
				verified.GET("/groups", groupHandler.List)
				verified.GET("/groups/:id", groupHandler.GetByID)
				verified.POST("/groups", groupHandler.Create)
				verified.PUT("/groups/:id", groupHandler.Update)
				verified.DELETE("/groups/:id", groupHandler.Delete)
				verified.POST("/groups/:id/enroll", groupHandler.Enroll)
				verified.DELETE("/groups/:id/enroll/:user_id", groupHandler.Unenroll)

				packageHandler := handlers.NewPackageHandler(db)
				verified.GET("/packages", packageHandler.List)
				verified.GET("/packages/:id", packageHandler.GetByID)
				verified.POST("/packages", packageHandler.Create)
				verified.PUT("/packages/:id", packageHandler.Update)
				verified.DELETE("/packages/:id", packageHandler.Delete)
				verified.POST("/packages/:id/purchase", packageHandler.Purchase)
			}

			// Admin only routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireVerified(), middleware.RequireAbility(policy.ActionManage, policy.ResourceUsers), middleware.AuditLog())
			{
				userHandler := handlers.NewUserHandler(db)
				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.GetByID)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)
			}
		}
	}
}
