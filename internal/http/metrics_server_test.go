package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ros/internal/metrics"
)

func newTestProvider(t *testing.T) *metrics.Provider {
	t.Helper()
	provider, err := metrics.NewProvider("ros_test")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Error_NilProvider", func(t *testing.T) {
		server, err := NewMetricsServer("localhost", 9090, logger, nil)

		assert.Error(t, err)
		assert.Nil(t, server)
	})

	t.Run("Success_JoinsHostAndPort", func(t *testing.T) {
		server, err := NewMetricsServer("::1", 9090, logger, newTestProvider(t))

		require.NoError(t, err)
		assert.Equal(t, "[::1]:9090", server.server.Addr)
		assert.Equal(t, 5*time.Second, server.server.ReadHeaderTimeout)
	})
}

func TestMetricsServer_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server, err := NewMetricsServer("localhost", 9090, logger, newTestProvider(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "metrics", method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusNoContent},
		{name: "api is not served", method: http.MethodGet, path: "/api/ros/v1/status", status: http.StatusNotFound},
		{name: "metrics is read only", method: http.MethodPost, path: "/metrics", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.GetHandler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.path == "/metrics" && tt.status == http.StatusOK {
				assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
			}
		})
	}
}

func TestMetricsServer_StartShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server, err := NewMetricsServer("127.0.0.1", 0, logger, newTestProvider(t))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Start(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
