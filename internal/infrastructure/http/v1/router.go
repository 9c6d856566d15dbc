// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"erpreports/internal/core/apperror"
	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/http/v1/handlers"
	"erpreports/internal/infrastructure/http/v1/middleware"
	"erpreports/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// DB is pinged by the readiness probe
	DB handlers.Pinger

	// Reports serves every report endpoint
	Reports *reports.Service

	// Logger for request logging
	Logger *logger.Logger

	// APIKey is the shared secret expected in X-API-Key
	APIKey string

	// Debug switches gin to debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.APIKey(cfg.APIKey)) // /health* stays public

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	router.GET("/health", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	reportsHandler := handlers.NewReportsHandler(handlers.NewBaseHandler(), cfg.Reports)
	reportsHandler.RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound(c.Request.URL.Path))
		c.Abort()
	})

	return router
}

// NewHandler wraps the router with gzip compression for clients that accept it.
func NewHandler(cfg RouterConfig) http.Handler {
	return gzhttp.GzipHandler(NewRouter(cfg))
}
