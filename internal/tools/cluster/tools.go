// Package cluster provides cluster-wide MCP tools: the namespace selector
// and the overview dashboard.
package cluster

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
)

// RegisterClusterTools registers all cluster tools with the MCP server
func RegisterClusterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	kubeContextParam := tools.AddKubeContextParam(sc)

	namespacesOpts := []mcp.ToolOption{
		mcp.WithDescription("List the names of all namespaces"),
	}
	namespacesOpts = append(namespacesOpts, kubeContextParam...)
	s.AddTool(mcp.NewTool("get_namespaces", namespacesOpts...),
		tools.WrapWithAuditLogging("get_namespaces", handleGetNamespaces, sc))

	overviewOpts := []mcp.ToolOption{
		mcp.WithDescription("Summarize the current context: object counts per kind and pods per phase"),
		mcp.WithString("namespace",
			mcp.Description("Namespace to summarize (optional, all namespaces if not specified)"),
		),
	}
	overviewOpts = append(overviewOpts, kubeContextParam...)
	s.AddTool(mcp.NewTool("get_overview", overviewOpts...),
		tools.WrapWithAuditLogging("get_overview", handleGetOverview, sc))

	return nil
}
