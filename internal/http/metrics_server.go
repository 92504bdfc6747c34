package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ros/internal/metrics"
)

// MetricsServer exposes the Prometheus scrape endpoint on its own port so the
// API listener never serves /metrics.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer builds the scrape listener. A nil provider is an error:
// the server is only created when metrics are enabled.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	provider *metrics.Provider,
) (*MetricsServer, error) {
	if provider == nil {
		return nil, errors.New("metrics provider is required")
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
			Handler:           newMetricsRouter(provider, logger),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}, nil
}

func newMetricsRouter(provider *metrics.Provider, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	router.GET("/metrics", gin.WrapH(provider.Handler()))
	// Liveness without rendering the exposition.
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

// GetHandler returns the router, for tests.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown. Request contexts derive from ctx.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	s.logger.Info("starting metrics server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight scrapes.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
