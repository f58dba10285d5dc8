// Package instrumentation provides OpenTelemetry instrumentation for the
// kube-panel server.
//
// Metrics:
//   - http_requests_total / http_request_duration_seconds: HTTP transport requests
//   - kubernetes_operations_total / kubernetes_operation_duration_seconds: API calls made by the k8s client
//   - tool_invocations_total / tool_invocation_duration_seconds: MCP tool calls
//
// Metrics are exported through Prometheus (default), OTLP over HTTP or
// stdout. Traces are exported through OTLP over HTTP or stdout, or not at all.
//
// Namespace and resource type labels on Kubernetes metrics are only recorded
// when detailed labels are enabled; otherwise only operation and status are
// used to keep cardinality bounded.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - METRICS_DETAILED_LABELS: include namespace and resource type labels (default: false)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: kube-panel)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordK8sOperation(ctx, "list", "pods", "default", "success", time.Since(start))
package instrumentation
