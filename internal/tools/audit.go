// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/instrumentation"
	"github.com/giantswarm/kube-panel/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// mutatingToolPrefixes identify tools that change cluster state.
var mutatingToolPrefixes = []string{"delete_", "apply_"}

// IsMutatingTool reports whether the named tool changes cluster state.
func IsMutatingTool(toolName string) bool {
	for _, prefix := range mutatingToolPrefixes {
		if strings.HasPrefix(toolName, prefix) {
			return true
		}
	}
	return false
}

// WrapWithAuditLogging wraps a tool handler with tracing, metrics and audit
// logging. The wrapper captures:
//   - Tool invocation timing
//   - Kube context and resource information from request arguments
//   - Success/error status from the handler result
//   - OpenTelemetry trace context for correlation
//
// Without an instrumentation provider only the span is recorded, which is a
// no-op under the global no-op tracer provider.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		invocation := instrumentation.NewToolInvocation(toolName)
		extractAuditInfoFromArgs(invocation, args)
		if IsMutatingTool(toolName) {
			invocation.WithMutation(sc.Config().DryRun)
		}

		attrs := instrumentation.NewSpanAttributeBuilder().
			WithKubeContext(invocation.KubeContext).
			WithNamespace(invocation.Namespace).
			WithResource(invocation.ResourceType, invocation.ResourceName)
		if invocation.Mutating {
			attrs.WithDryRun(invocation.DryRun)
		}

		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs.Build()...)
		defer span.End()

		invocation.WithSpanContext(ctx)

		result, err := handler(ctx, request, sc)

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			// MCP tool errors are returned in the result, not as Go errors
			msg := resultText(result)
			invocation.CompleteWithError(errors.New(msg))
			instrumentation.SetSpanError(span, errors.New(msg))
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		provider := sc.InstrumentationProvider()
		provider.Metrics().RecordToolInvocation(ctx, toolName, invocation.Status(), invocation.Duration)
		provider.AuditLogger().LogToolInvocation(ctx, invocation)

		return result, err
	}
}

// extractAuditInfoFromArgs extracts context, namespace, and resource information
// from tool request arguments for audit logging.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}) {
	if kubeContext, ok := args["kubeContext"].(string); ok && kubeContext != "" {
		invocation.WithKubeContext(kubeContext)
	} else if contextName, ok := args["contextName"].(string); ok && contextName != "" {
		invocation.WithKubeContext(contextName)
	}

	namespace, _ := args["namespace"].(string)
	resourceType, _ := args["resourceType"].(string)
	resourceName, _ := args["name"].(string)

	if namespace != "" || resourceType != "" || resourceName != "" {
		invocation.WithResource(namespace, resourceType, resourceName)
	}
}

// resultText returns the first text content of a result, or "".
func resultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}
