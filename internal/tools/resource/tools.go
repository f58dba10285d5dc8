package resource

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
)

// RegisterResourceTools registers the workload tables and the generic
// apply_yaml tool with the MCP server.
func RegisterResourceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	for _, kind := range WorkloadKinds {
		RegisterKindTools(s, sc, kind)
	}

	applyOpts := []mcp.ToolOption{
		mcp.WithDescription("Apply a YAML manifest with server-side apply. The resource type is taken from the manifest's kind unless given"),
		mcp.WithString("yaml",
			mcp.Required(),
			mcp.Description("Manifest to apply; metadata.name and metadata.namespace are required"),
		),
		mcp.WithString("resourceType",
			mcp.Description("Resource type to apply to (optional, e.g. configmaps, deployments)"),
		),
	}
	applyOpts = append(applyOpts, tools.AddKubeContextParam(sc)...)
	s.AddTool(mcp.NewTool("apply_yaml", applyOpts...), tools.WrapWithAuditLogging("apply_yaml", handleApplyYAML, sc))

	return nil
}

// RegisterKindTools registers the list, YAML and delete tools of one kind.
func RegisterKindTools(s *mcpserver.MCPServer, sc *server.ServerContext, kind Kind) {
	listOpts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("List %s as table rows", kind.Plural)),
		mcp.WithString("namespace",
			mcp.Description("Namespace to list (optional, all namespaces if not specified)"),
		),
		mcp.WithString("labelSelector",
			mcp.Description("Label selector to filter by (optional)"),
		),
	}
	listOpts = append(listOpts, tools.AddKubeContextParam(sc)...)
	s.AddTool(mcp.NewTool(kind.ListTool, listOpts...), tools.WrapWithAuditLogging(kind.ListTool,
		func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
			return HandleList(ctx, request, sc, kind)
		}, sc))

	s.AddTool(mcp.NewTool(kind.YAMLTool, NameParams(sc, kind, "Get the full definition of a %s as YAML")...),
		tools.WrapWithAuditLogging(kind.YAMLTool,
			func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
				return HandleGetYAML(ctx, request, sc, kind)
			}, sc))

	s.AddTool(mcp.NewTool(kind.DeleteTool, NameParams(sc, kind, "Delete a %s")...),
		tools.WrapWithAuditLogging(kind.DeleteTool,
			func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
				return HandleDelete(ctx, request, sc, kind)
			}, sc))
}

// NameParams returns the options of a tool addressing one object of kind.
// description is a format string receiving the kind's singular name.
func NameParams(sc *server.ServerContext, kind Kind, description string) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf(description, kind.Singular)),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Name of the %s", kind.Singular)),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the object (optional, uses the default namespace if not specified)"),
		),
	}
	return append(opts, tools.AddKubeContextParam(sc)...)
}
