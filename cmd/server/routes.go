package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/handlers"
	"github.com/hubinova/backend/internal/middleware"
	"github.com/hubinova/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(svc.cfg.Server.AllowedOrigins...))
	r.Use(svc.metrics.Middleware())
	r.Use(middleware.BodyLimit(int64(svc.cfg.Server.MaxBodyMB) << 20))

	r.GET("/health", svc.healthHandler.Health)
	r.GET("/metrics", handlers.Metrics(svc.registry))
	r.Static("/uploads", svc.cfg.Upload.Dir)

	// API routes. Every request is attributed to an actor, anonymous if no
	// valid token is sent, and recorded in the access log.
	api := r.Group("/api", middleware.OptionalAuth(), middleware.AccessLog(svc.accessLogService))
	{
		api.GET("/status", svc.healthHandler.Status)
		api.GET("/stats", svc.statsHandler.Get)

		// Auth routes (public, rate limited)
		auth := api.Group("/auth", svc.authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Public reads
		api.GET("/challenges", svc.challengeHandler.List)
		api.GET("/challenges/:id", svc.challengeHandler.GetByID)
		api.GET("/solutions", svc.solutionHandler.List)
		api.GET("/solutions/statuses", svc.solutionStatusHandler.List)
		api.GET("/solutions/statuses/:id", svc.solutionStatusHandler.GetByID)
		api.GET("/solutions/:id", svc.solutionHandler.GetByID)
		api.GET("/events", svc.eventHandler.List)
		api.GET("/events/:id", svc.eventHandler.GetByID)
		api.GET("/news", svc.newsHandler.List)
		api.GET("/news/:id", svc.newsHandler.GetByID)
		api.GET("/program-info", svc.programInfoHandler.List)
		api.GET("/program-info/:id", svc.programInfoHandler.GetByID)
		api.GET("/how-to-participate", svc.howToHandler.List)
		api.GET("/how-to-participate/:id", svc.howToHandler.GetByID)
		api.GET("/geral", svc.geralHandler.Get)

		// Protected routes
		protected := api.Group("", middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.PUT("/auth/me", svc.authHandler.UpdateMe)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Challenges
			protected.GET("/challenges/my", svc.challengeHandler.My)
			protected.GET("/challenges/:id/solutions", svc.solutionHandler.ForChallenge)
			protected.POST("/challenges", svc.challengeHandler.Create)
			protected.PUT("/challenges/:id", svc.challengeHandler.Update)
			protected.POST("/challenges/:id/submit", svc.challengeHandler.Submit)
			protected.DELETE("/challenges/:id", svc.challengeHandler.Delete)

			// Solutions
			protected.GET("/solutions/my", svc.solutionHandler.My)
			protected.POST("/solutions", svc.solutionHandler.Create)
			protected.PUT("/solutions/:id", svc.solutionHandler.Update)
			protected.POST("/solutions/:id/submit", svc.solutionHandler.Submit)
			protected.DELETE("/solutions/:id", svc.solutionHandler.Delete)

			// Uploads and drafts
			protected.POST("/upload", svc.uploadHandler.Upload)
			protected.GET("/drafts/:entity/:key", svc.draftHandler.Get)
			protected.PUT("/drafts/:entity/:key", svc.draftHandler.Put)
			protected.DELETE("/drafts/:entity/:key", svc.draftHandler.Delete)
		}

		// Admin routes
		admin := api.Group("", middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.PATCH("/solutions/:id/status", svc.solutionHandler.ChangeStatus)

			admin.POST("/solutions/statuses", svc.solutionStatusHandler.Create)
			admin.PUT("/solutions/statuses/:id", svc.solutionStatusHandler.Update)
			admin.DELETE("/solutions/statuses/:id", svc.solutionStatusHandler.Delete)

			admin.POST("/events", svc.eventHandler.Create)
			admin.PUT("/events/:id", svc.eventHandler.Update)
			admin.DELETE("/events/:id", svc.eventHandler.Delete)

			admin.POST("/news", svc.newsHandler.Create)
			admin.PUT("/news/:id", svc.newsHandler.Update)
			admin.DELETE("/news/:id", svc.newsHandler.Delete)

			admin.POST("/program-info", svc.programInfoHandler.Create)
			admin.PUT("/program-info/:id", svc.programInfoHandler.Update)
			admin.DELETE("/program-info/:id", svc.programInfoHandler.Delete)

			admin.POST("/how-to-participate", svc.howToHandler.Create)
			admin.PUT("/how-to-participate/:id", svc.howToHandler.Update)
			admin.DELETE("/how-to-participate/:id", svc.howToHandler.Delete)

			admin.PUT("/geral", svc.geralHandler.Update)

			admin.GET("/users", svc.userHandler.List)
			admin.GET("/users/:id", svc.userHandler.GetByID)
			admin.PUT("/users/:id", svc.userHandler.Update)
			admin.DELETE("/users/:id", svc.userHandler.Delete)

			admin.GET("/access-logs", svc.accessLogHandler.List)
		}
	}
}
