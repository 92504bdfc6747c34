// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/ros/internal/config"
	"github.com/allisson/ros/internal/metrics"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
	rbacHttp "github.com/allisson/ros/internal/rbac/http"
	rbacUseCase "github.com/allisson/ros/internal/rbac/usecase"
	systemHttp "github.com/allisson/ros/internal/system/http"
	"github.com/allisson/ros/internal/system/http/dto"
)

// StatusMessage is returned by the status endpoints.
const StatusMessage = "Application is running!"

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
//
// Route layout:
//
//	GET  /health, /ready                            ungated probes
//	GET  /api/ros/v1/status                         ungated
//	GET  /api/ros/v1/is_configured                  gated, read permissions
//	GET  /api/ros/v1/systems/:inventory_id          gated, read permissions
//	GET  /api/ros/v1/systems/:inventory_id/history  gated, read permissions
//	POST /api/ros/v1/rating                         gated, write permissions
//	GET  /mgmt/v1/status                            behind the gate, exempt by path
//
// ctx bounds background work started by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	gate rbacUseCase.AccessUseCase,
	systemHandler *systemHttp.SystemHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	application := rbacDomain.Application(cfg.RBACApplication)

	// One limiter is shared by read and write routes.
	var limit gin.HandlerFunc
	if cfg.RateLimitEnabled {
		limit = rbacHttp.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}
	gatedBy := func(permissions rbacDomain.PermissionSet) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, 2)
		if limit != nil {
			chain = append(chain, limit)
		}
		return append(chain, rbacHttp.RequirePermissions(gate, application, permissions, s.logger))
	}
	readGated := gatedBy(systemHttp.ReadPermissions)

	v1 := router.Group("/api/ros/v1")
	{
		v1.GET("/status", s.statusHandler)

		reads := v1.Group("", readGated...)
		reads.GET("/is_configured", systemHandler.IsConfiguredHandler)
		reads.GET("/systems/:inventory_id", systemHandler.GetHandler)
		reads.GET("/systems/:inventory_id/history", systemHandler.HistoryHandler)

		writes := v1.Group("", gatedBy(systemHttp.WritePermissions)...)
		writes.POST("/rating", systemHandler.RateHandler)
	}

	mgmt := router.Group("/mgmt/v1", readGated...)
	{
		mgmt.GET("/status", s.statusHandler)
	}

	s.router = router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) statusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: StatusMessage})
}
