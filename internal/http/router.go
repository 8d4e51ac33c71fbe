package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/regrid/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(exportUC *usecase.ExportUseCase) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(exportUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	// Grid geometry.
	grids := v1.Group("/grids")
	grids.GET("", handler.GetGrids)
	grids.GET("/:variant", handler.GetGridInfo)
	grids.GET("/:variant/nearest", handler.GetNearest)

	// Resampling.
	v1.POST("/resample", handler.Resample)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
