// Package pod provides the MCP tools behind the panel's pods table.
package pod

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
	"github.com/giantswarm/kube-panel/internal/tools/resource"
)

// podDefinitionTool is the older name of get_pod_yaml, kept for clients
// that still call it.
const podDefinitionTool = "get_pod_definition"

const applyPodYAMLTool = "apply_pod_yaml"

// RegisterPodTools registers all pod-related tools with the MCP server.
func RegisterPodTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	resource.RegisterKindTools(s, sc, resource.Pods)

	s.AddTool(mcp.NewTool(podDefinitionTool, resource.NameParams(sc, resource.Pods, "Get the full definition of a %s as YAML (same as get_pod_yaml)")...),
		tools.WrapWithAuditLogging(podDefinitionTool,
			func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
				return resource.HandleGetYAML(ctx, request, sc, resource.Pods)
			}, sc))

	applyOpts := []mcp.ToolOption{
		mcp.WithDescription("Apply an edited pod manifest with server-side apply"),
		mcp.WithString("yaml",
			mcp.Required(),
			mcp.Description("Pod manifest; metadata.name and metadata.namespace are required"),
		),
	}
	applyOpts = append(applyOpts, tools.AddKubeContextParam(sc)...)
	s.AddTool(mcp.NewTool(applyPodYAMLTool, applyOpts...),
		tools.WrapWithAuditLogging(applyPodYAMLTool, handleApplyPodYAML, sc))

	return nil
}
