package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/giantswarm/kube-panel/internal/instrumentation"
	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/logging"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/server/middleware"
	"github.com/giantswarm/kube-panel/internal/tools/cluster"
	contexttools "github.com/giantswarm/kube-panel/internal/tools/context"
	"github.com/giantswarm/kube-panel/internal/tools/pod"
	"github.com/giantswarm/kube-panel/internal/tools/resource"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// serviceName identifies the server to MCP clients and telemetry backends.
const serviceName = "kube-panel"

// newServeCmd creates the Cobra command for starting the server.
func newServeCmd() *cobra.Command {
	v := newViper()
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the kube-panel server",
		Long: `Start the kube-panel server. The dashboard's commands are served as
Model Context Protocol tools.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Cluster access uses the kubeconfig (KUBECONFIG or ~/.kube/config) unless
--in-cluster is set, in which case the pod's service account is used.

Every flag can also be set with a KUBE_PANEL_ environment variable
(e.g. KUBE_PANEL_NON_DESTRUCTIVE=true) or in the YAML file given with --config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServeConfig(v, configFile)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), config)
		},
	}

	cmd.Flags().StringVar(&configFile, flagConfig, "", "Path to a YAML configuration file")
	registerServeFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

// registerServeFlags defines every serve setting except --config. Each one
// is bound to viper under the flag's name.
func registerServeFlags(flags *pflag.FlagSet) {
	// Transport flags
	flags.String(flagTransport, transportStdio, "Transport type: stdio, sse, or streamable-http")
	flags.String(flagHTTPAddr, ":8080", "HTTP server address (for sse and streamable-http transports)")
	flags.String(flagSSEEndpoint, "/sse", "SSE endpoint path (for sse transport)")
	flags.String(flagMessageEndpoint, "/message", "Message endpoint path (for sse transport)")
	flags.String(flagHTTPEndpoint, "/mcp", "HTTP endpoint path (for streamable-http transport)")
	flags.StringSlice(flagAllowedOrigins, nil, "Origins allowed to call the HTTP transports from a browser (comma-separated)")
	flags.Bool(flagEnableHSTS, false, "Send Strict-Transport-Security behind a TLS-terminating proxy")
	flags.Int64(flagMaxRequestSize, middleware.DefaultMaxRequestSize, "Maximum HTTP request body size in bytes (0 disables the limit)")

	// Kubernetes flags
	flags.String(flagKubeconfig, "", "Path to the kubeconfig file (default: KUBECONFIG or ~/.kube/config)")
	flags.String(flagContext, "", "Kubeconfig context to start with (default: the kubeconfig's current context)")
	flags.Bool(flagInCluster, false, "Use in-cluster authentication (service account token) instead of kubeconfig")
	flags.String(flagDefaultNamespace, "default", "Namespace used when a tool call names none")
	flags.Bool(flagNonDestructive, false, "Block delete and apply unless --dry-run is set or the operation is listed in --allowed-operations")
	flags.Bool(flagDryRun, false, "Validate delete and apply server-side without persisting them")
	flags.StringSlice(flagAllowedOperations, nil, "Operations allowed even in non-destructive mode (delete, apply); when set, other mutating operations are rejected")
	flags.StringSlice(flagRestrictedNamespaces, nil, "Namespaces the panel may not touch (comma-separated)")
	flags.Float32(flagQPSLimit, k8s.DefaultQPSLimit, "QPS limit for Kubernetes API calls")
	flags.Int(flagBurstLimit, k8s.DefaultBurstLimit, "Burst limit for Kubernetes API calls")

	// Logging flags
	flags.Bool(flagDebug, false, "Enable debug logging (same as --log-level debug)")
	flags.String(flagLogLevel, "info", "Log level: debug, info, warn, error")
	flags.String(flagLogFormat, logging.FormatText, "Log format: text or json")

	// Metrics flags
	flags.Bool(flagMetricsEnabled, true, "Serve Prometheus metrics on a dedicated port when instrumentation is enabled")
	flags.String(flagMetricsAddr, server.DefaultMetricsAddr, "Metrics server address")
}

// runServe contains the main server logic with support for multiple transports
func runServe(ctx context.Context, config ServeConfig) error {
	logger, err := logging.Setup(logging.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceName = serviceName
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(shutdownErr))
		}
	}()
	instrumentationProvider.SetAuditLogger(instrumentation.NewAuditLogger(logger.With(slog.String("component", "audit"))))

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	k8sClient, err := k8s.NewClient(config.k8sClientConfig(
		logger.With(slog.String("component", "k8s")),
		instrumentationProvider.Metrics(),
	))
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithK8sClient(k8sClient),
		server.WithLogger(logger),
		server.WithConfig(config.serverConfig(rootCmd.Version)),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer(serviceName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerTools(mcpSrv, serverContext); err != nil {
		return err
	}

	logger.Info("starting kube-panel",
		"transport", config.Transport,
		"version", rootCmd.Version,
		"non_destructive", config.NonDestructiveMode,
		"dry_run", config.DryRun,
		"in_cluster", config.InCluster)

	switch config.Transport {
	case transportStdio:
		return runStdioServer(shutdownCtx, mcpSrv)
	case transportSSE:
		return runSSEServer(shutdownCtx, mcpSrv, config, serverContext, logger)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config, serverContext, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}

// registerTools registers every tool category with the MCP server.
func registerTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	registrations := []struct {
		name     string
		register func(*mcpserver.MCPServer, *server.ServerContext) error
	}{
		{"pod", pod.RegisterPodTools},
		{"resource", resource.RegisterResourceTools},
		{"context", contexttools.RegisterContextTools},
		{"cluster", cluster.RegisterClusterTools},
	}

	for _, r := range registrations {
		if err := r.register(mcpSrv, sc); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", r.name, err)
		}
	}
	return nil
}
