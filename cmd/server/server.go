package main

import (
	"fmt"

	"codeberg.org/lessonplanner/server/internal/config"
	"codeberg.org/lessonplanner/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	rdb, err := InitializeRedis(cfg)
	if err != nil {
		return nil, err
	}

	generator, agentConfig, err := InitializeGenerator()
	if err != nil {
		closeRedis(rdb)
		return nil, err
	}

	services, err := InitializeServices(cfg, generator, agentConfig, rdb)
	if err != nil {
		closeRedis(rdb)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("services initialized",
		"access_mode", cfg.AccessMode,
		"state_backend", cfg.StateBackend,
		"primary_model", agentConfig.PrimaryModel,
		"secondary_model", agentConfig.SecondaryModel,
		"free_tier_limit", cfg.FreeTierLimit,
	)

	return NewServerWithServices(cfg, services, rdb)
}

// assembles the router around already-built services
func NewServerWithServices(cfg *config.Config, services *Services, rdb *redis.Client) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:   cfg,
		services: services,
		redis:    rdb,
		router:   router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		return nil, err
	}

	return server, nil
}

// releases external connections
func (s *Server) Close() {
	closeRedis(s.redis)
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}
}
