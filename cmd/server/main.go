package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/lessonplanner/server/internal/config"
	"codeberg.org/lessonplanner/server/internal/logger"
)

// @title AI Lesson Planner API
// @version 1.0
// @description Generates grade-appropriate lesson plans and worksheets with an AI model
// @description
// @description Features:
// @description - Lesson plan and 9-item worksheet generation from a grade and topic
// @description - Optional image source material
// @description - Free-text refinement of an existing lesson
// @description - Free and Pro tiers backed by Stripe subscriptions

// @contact.name API Support
// @contact.url https://codeberg.org/lessonplanner/server

// @license.name GPL-3.0
// @license.url https://www.gnu.org/licenses/gpl-3.0.html

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Customer key or JWT. Format: Bearer {token}

func main() {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Setup(cfg.Environment, os.Getenv("LOG_LEVEL"))
	logger.Info("starting lesson planner server", "environment", cfg.Environment)

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// write timeout leaves room for a primary attempt plus a secondary attempt
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
