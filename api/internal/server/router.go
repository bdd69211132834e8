// Package server assembles the gin engine.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diff-finder/api/internal/handle"
	"diff-finder/api/internal/middleware"
)

type Options struct {
	Mode           string
	MaxUploadBytes int64
}

// NewRouter wires the middlewares and routes of the public API.
func NewRouter(opts Options, h *handle.Handle, log *zap.Logger) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	r.GET("/healthz", h.Health)
	r.POST("/detect_differences", middleware.BodyLimit(opts.MaxUploadBytes), h.DetectDifferences)

	return r
}
