package cmd

import (
	"context"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/server"
)

// runSSEServer runs the server with SSE transport. The SSE server routes
// both of its endpoints itself, so it is mounted on each of them.
func runSSEServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext, logger *slog.Logger) error {
	sseServer := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint(config.SSEEndpoint),
		mcpserver.WithMessageEndpoint(config.MessageEndpoint),
	)

	logger.Debug("SSE server instance created",
		"sse_endpoint", config.SSEEndpoint,
		"message_endpoint", config.MessageEndpoint)

	logger.Info("SSE server starting",
		"addr", config.HTTPAddr,
		"sse_endpoint", config.SSEEndpoint,
		"message_endpoint", config.MessageEndpoint)

	handler := newHTTPHandler(sseServer, []string{config.SSEEndpoint, config.MessageEndpoint}, config, sc, logger)
	return serveHTTP(ctx, "SSE", handler, config, sc.InstrumentationProvider(), logger)
}
