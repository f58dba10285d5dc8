// Package contexttools provides the MCP tools for choosing the kubeconfig
// context the panel talks to.
package contexttools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
)

// RegisterContextTools registers all context management tools with the MCP server
func RegisterContextTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getClustersTool := mcp.NewTool("get_clusters",
		mcp.WithDescription("List the names of all kubeconfig contexts"),
	)
	s.AddTool(getClustersTool, tools.WrapWithAuditLogging("get_clusters", handleGetClusters, sc))

	getCurrentClusterTool := mcp.NewTool("get_current_cluster",
		mcp.WithDescription("Get the current kubeconfig context"),
	)
	s.AddTool(getCurrentClusterTool, tools.WrapWithAuditLogging("get_current_cluster", handleGetCurrentCluster, sc))

	useClusterTool := mcp.NewTool("use_cluster",
		mcp.WithDescription("Switch to a different kubeconfig context"),
		mcp.WithString("contextName",
			mcp.Required(),
			mcp.Description("Name of the kubeconfig context to switch to"),
		),
	)
	s.AddTool(useClusterTool, tools.WrapWithAuditLogging("use_cluster", handleUseCluster, sc))

	return nil
}
