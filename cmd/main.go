package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"approval-matrix-service/internal/config"
	"approval-matrix-service/internal/handlers"
	"approval-matrix-service/internal/middleware"
	"approval-matrix-service/internal/services"
)

// @title Approval Matrix API
// @version 1.0.0
// @description Resolves construction approval requirements, authority and progress from the approval matrix

// @contact.name API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8099
// @BasePath /api/v1

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.Load()
	logger := cfg.NewLogger()
	if envErr != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Load and validate the approval matrix
	matrix, err := config.LoadMatrix(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load approval matrix")
	}
	logger.WithFields(logrus.Fields{
		"approval_types": len(matrix.ApprovalTypes()),
		"roles":          len(matrix.Roles()),
		"source":         matrixSource(cfg),
	}).Info("Approval matrix loaded")

	// Initialize services
	matrixService := services.NewApprovalMatrixService(matrix)

	// Initialize handlers
	matrixHandler := handlers.NewMatrixHandler(matrixService)

	// Initialize Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Role names such as "QA/QC Manager" arrive path-escaped
	router.UseRawPath = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(logger))

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadinessCheck(matrix))

	// API routes
	api := router.Group("/api/v1")
	matrixHandler.RegisterRoutes(api)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Approval matrix service starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server shutdown complete")
}

func matrixSource(cfg *config.Config) string {
	if cfg.MatrixConfigPath == "" {
		return "system"
	}
	return cfg.MatrixConfigPath
}
