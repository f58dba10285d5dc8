package pod

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools/resource"
)

// handleApplyPodYAML applies an edited pod manifest. The pod's name and
// namespace come from the manifest itself.
func handleApplyPodYAML(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	req, errResult := resource.ApplyManifest(ctx, request, sc, resource.Pods.ResourceType)
	if errResult != nil {
		return errResult, nil
	}

	sc.Logger().Info("Applied pod manifest", "name", req.Name, "namespace", req.Namespace)

	return mcp.NewToolResultText(fmt.Sprintf("Successfully applied changes to pod %s in namespace %s", req.Name, req.Namespace)), nil
}
