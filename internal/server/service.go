// Package server exposes the extraction pipeline and the invoice store
// over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"invoice-audit/internal/common"
	"invoice-audit/internal/export"
	"invoice-audit/internal/llm"
	"invoice-audit/internal/store"
)

// Service wires the handlers to their dependencies. The LLM client is
// optional; without it the rule-based pipeline is the only strategy.
type Service struct {
	store     store.Store
	exporter  *export.Service
	ai        *llm.Client
	aiPrimary bool
	// cache memoizes extraction results by content hash so re-uploads
	// of the same document do not re-run the pipeline (or the model).
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewService(st store.Store, ai *llm.Client, cfg *common.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.Server.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		store:     st,
		exporter:  export.NewService(st, logger),
		ai:        ai,
		aiPrimary: cfg.LLM.Primary,
		cache:     gocache.New(ttl, 2*ttl),
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Service) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/extract", s.handleExtract)
		api.GET("/invoices", s.handleList)
		api.GET("/invoices/excel", s.handleExport)
		api.GET("/invoices/:id", s.handleGet)
		api.PATCH("/invoices/:id/fields", s.handleFieldEdit)
		api.DELETE("/invoices", s.handleClear)
	}
	return r
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}
