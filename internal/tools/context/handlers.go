package contexttools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/logging"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
)

// handleGetClusters returns the context names, sorted.
func handleGetClusters(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	contexts, err := sc.K8sClient().ListContexts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list contexts: %v", err)), nil
	}

	names := make([]string, 0, len(contexts))
	for _, c := range contexts {
		names = append(names, c.Name)
	}

	return tools.JSONResult(names, "contexts")
}

func handleGetCurrentCluster(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	currentContext, err := sc.K8sClient().GetCurrentContext(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get current context: %v", err)), nil
	}

	return tools.JSONResult(currentContext, "current context")
}

func handleUseCluster(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	contextName, err := request.RequireString("contextName")
	if err != nil || contextName == "" {
		return mcp.NewToolResultError("contextName is required"), nil
	}

	if err := sc.K8sClient().SwitchContext(ctx, contextName); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to switch context: %v", err)), nil
	}

	sc.Logger().Info("Switched kubeconfig context", logging.KubeContext(contextName))

	return mcp.NewToolResultText(fmt.Sprintf("Successfully switched to context: %s", contextName)), nil
}
