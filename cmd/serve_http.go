package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/instrumentation"
	"github.com/giantswarm/kube-panel/internal/logging"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/server/middleware"
)

// defaultShutdownTimeout bounds the graceful shutdown of the HTTP servers.
const defaultShutdownTimeout = 30 * time.Second

// runStreamableHTTPServer runs the server with Streamable HTTP transport
func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext, logger *slog.Logger) error {
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(config.HTTPEndpoint),
	)

	logger.Info("streamable HTTP server starting",
		"addr", config.HTTPAddr,
		"endpoint", config.HTTPEndpoint,
		"health_endpoints", []string{"/healthz", "/readyz"})

	handler := newHTTPHandler(mcpHandler, []string{config.HTTPEndpoint}, config, sc, logger)
	return serveHTTP(ctx, "streamable HTTP", handler, config, sc.InstrumentationProvider(), logger)
}

// newHTTPHandler mounts the MCP handler on endpoints next to the health
// endpoints and wraps the mux in the HTTP middleware chain.
func newHTTPHandler(mcpHandler http.Handler, endpoints []string, config ServeConfig, sc *server.ServerContext, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	for _, endpoint := range endpoints {
		mux.Handle(endpoint, mcpHandler)
	}

	healthChecker := server.NewHealthChecker(sc)
	healthChecker.RegisterHealthEndpoints(mux)

	return middleware.Chain(mux,
		middleware.SecurityHeaders(config.EnableHSTS),
		middleware.CORS(config.AllowedOrigins),
		middleware.MaxRequestSize(config.MaxRequestSize),
		middleware.HTTPMetrics(sc.InstrumentationProvider()),
		middleware.RequestLogging(logger),
	)
}

// serveHTTP listens on config.HTTPAddr until ctx is cancelled, then shuts
// the server down gracefully. The metrics server runs alongside it when enabled.
func serveHTTP(ctx context.Context, name string, handler http.Handler, config ServeConfig, provider *instrumentation.Provider, logger *slog.Logger) error {
	var metricsServer *server.MetricsServer
	if config.Metrics.Enabled && provider != nil && provider.Enabled() {
		var err error
		metricsServer, err = startMetricsServer(config.Metrics, provider, logger)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	// Streaming responses rule out a write timeout.
	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping " + name + " server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		// Shutdown metrics server first
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("error shutting down metrics server", logging.Err(err))
			}
		}

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down %s server: %w", name, err)
		}
	case err := <-serverDone:
		if metricsServer != nil {
			_ = metricsServer.Shutdown(context.Background())
		}
		if err != nil {
			return fmt.Errorf("%s server stopped with error: %w", name, err)
		}
		logger.Info(name + " server stopped normally")
	}

	logger.Info(name + " server gracefully stopped")
	return nil
}

// startMetricsServer starts the dedicated metrics server on a separate port.
func startMetricsServer(config MetricsServeConfig, provider *instrumentation.Provider, logger *slog.Logger) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    config.Addr,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	go func() {
		if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", logging.Err(err))
		}
	}()

	logger.Info("metrics server started", "addr", metricsServer.Addr(), "endpoint", "/metrics")
	return metricsServer, nil
}
