package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skinprices/api/handler"
	"github.com/use-agent/skinprices/api/middleware"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health stays outside auth so monitoring probes always work.
func NewRouter(runner handler.Runner, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	path := runner.OutputPath()
	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(cc, path, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/prices", handler.ListPrices(cc, path))
	protected.GET("/prices/:key", handler.GetPrice(cc, path))
	protected.GET("/lookup", handler.Lookup(cc, path))
	protected.POST("/refresh", handler.Refresh(runner, cc))

	return r
}
