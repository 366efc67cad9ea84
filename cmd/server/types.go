package main

import (
	"codeberg.org/lessonplanner/server/internal/access"
	"codeberg.org/lessonplanner/server/internal/agent"
	"codeberg.org/lessonplanner/server/internal/billing"
	"codeberg.org/lessonplanner/server/internal/config"
	"codeberg.org/lessonplanner/server/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	redis    *redis.Client // nil with the memory backend
	router   *gin.Engine
}

// holds the lesson pipeline: tier resolution, usage accounting, admission, generation
type Services struct {
	Agent    *agent.Agent
	Resolver *billing.Resolver
	Ledger   *usage.Ledger
	Gate     *access.Gate
}
