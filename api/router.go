package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/lcdparts/api/handler"
	"github.com/use-agent/lcdparts/api/middleware"
	"github.com/use-agent/lcdparts/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:     Recovery → Logger
//	Protected:  Auth (no-op when no keys are configured)
//
// Health stays outside auth so monitoring probes always work. mcpHandler,
// if non-nil, is mounted at cfg.Server.MCPPath.
func NewRouter(svc handler.Runner, mcpHandler http.Handler, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	auth := middleware.Auth(cfg.Auth.APIKeys)

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(svc, startTime))
	v1.POST("/search", auth, handler.Search(svc))

	if mcpHandler != nil {
		r.Any(cfg.Server.MCPPath, auth, gin.WrapH(mcpHandler))
	}

	return r
}
