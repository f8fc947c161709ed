package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lx-annotate/annotate-api/api/annotations"
	"github.com/lx-annotate/annotate-api/api/drafts"
	"github.com/lx-annotate/annotate-api/api/health"
	"github.com/lx-annotate/annotate-api/api/segments"
	"github.com/lx-annotate/annotate-api/api/stats"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/api/version"
	"github.com/lx-annotate/annotate-api/api/videos"
	_ "github.com/lx-annotate/annotate-api/docs/swagger"
	"github.com/lx-annotate/annotate-api/internal/backend"
	annotationsService "github.com/lx-annotate/annotate-api/internal/services/annotations"
	draftsService "github.com/lx-annotate/annotate-api/internal/services/drafts"
	segmentsService "github.com/lx-annotate/annotate-api/internal/services/segments"
	"github.com/lx-annotate/annotate-api/internal/services/sensitivemeta"
	statsService "github.com/lx-annotate/annotate-api/internal/services/stats"
	"github.com/lx-annotate/annotate-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Initialize the backend client if not set
	if deps.Backend == nil {
		deps.Backend = backend.NewClient(backend.Config{
			BaseURL: cfg.Backend.URL,
			Timeout: cfg.Backend.Timeout,
		})
	}

	// Wire the service layer on top of the backend client and storage
	if deps.DraftService == nil {
		if deps.Storage == nil {
			return fmt.Errorf("draft storage is not configured")
		}
		deps.DraftService = draftsService.NewService(deps.Storage)
	}
	if deps.SegmentService == nil {
		deps.SegmentService = segmentsService.NewService(deps.Backend)
	}
	if deps.AnnotationService == nil {
		deps.AnnotationService = annotationsService.NewService(deps.Backend, deps.SegmentService)
	}
	if deps.StatsService == nil {
		deps.StatsService = statsService.NewService(deps.Backend)
	}
	if deps.SensitiveMeta == nil {
		deps.SensitiveMeta = sensitivemeta.NewService(deps.Backend)
	}

	// Register video routes with general rate limiting (10 req/s, burst of 20)
	videoGroup := v1.Group("/videos")
	videoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	videos.RegisterRoutes(videoGroup, deps)
	drafts.RegisterRoutes(videoGroup, deps)

	// Register segment routes with general rate limiting (10 req/s, burst of 20)
	segmentGroup := v1.Group("/video-segments")
	segmentGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	segments.RegisterRoutes(segmentGroup, deps)

	// Register annotation routes with general rate limiting (10 req/s, burst of 20)
	annotationGroup := v1.Group("/annotations")
	annotationGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	annotations.RegisterRoutes(annotationGroup, deps)

	// Register stats routes with conservative rate limiting (5 req/s, burst of 10)
	// Each forced refresh fans out three backend calls
	statsGroup := v1.Group("/stats")
	statsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	stats.RegisterRoutes(statsGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
