package main

import (
	"codeberg.org/lessonplanner/server/api/rest/health"
	"codeberg.org/lessonplanner/server/api/rest/lesson"
	"codeberg.org/lessonplanner/server/api/rest/webhooks"
	_ "codeberg.org/lessonplanner/server/docs"
	"codeberg.org/lessonplanner/server/internal/auth"
	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	cfg := server.config

	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", health.Handler)
	router.GET("/ping", health.PingHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	webhooks.RegisterRoutes(router, cfg.StripeWebhookSecret)

	rateLimit, err := RateLimitMiddleware(cfg.RateLimit, server.redis)
	if err != nil {
		return err
	}

	api := router.Group("", rateLimit, auth.RequireIdentity(cfg.JWTSecret))
	{
		lesson.RegisterRoutes(api, server.services.Gate, server.services.Agent, cfg.UpgradeURL)
	}

	return nil
}
