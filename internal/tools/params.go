package tools

import (
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/server"
)

// AddKubeContextParam returns the kubeContext tool option unless the server
// runs in-cluster, where only the service account's cluster is reachable.
//
// Usage in tool registration:
//
//	opts := []mcp.ToolOption{
//	    mcp.WithDescription("..."),
//	}
//	opts = append(opts, tools.AddKubeContextParam(sc)...)
//	opts = append(opts, /* tool-specific params */...)
//	tool := mcp.NewTool("tool_name", opts...)
func AddKubeContextParam(sc *server.ServerContext) []mcp.ToolOption {
	if sc.Config().InClusterMode {
		return nil
	}
	return []mcp.ToolOption{
		mcp.WithString("kubeContext",
			mcp.Description("Kubernetes context to use (optional, uses current context if not specified)"),
		),
	}
}
