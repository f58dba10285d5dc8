package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/server"
)

// ResourceArgs are the arguments shared by the single-object tools.
type ResourceArgs struct {
	KubeContext string
	Namespace   string
	Name        string
}

// ParseResourceArgs reads kubeContext, namespace and name from a request.
// A missing namespace falls back to the server's default namespace.
func ParseResourceArgs(request mcp.CallToolRequest, sc *server.ServerContext) (ResourceArgs, *mcp.CallToolResult) {
	args := request.GetArguments()

	name, _ := args["name"].(string)
	if name == "" {
		return ResourceArgs{}, mcp.NewToolResultError("name is required")
	}

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = sc.Config().DefaultNamespace
	}

	kubeContext, _ := args["kubeContext"].(string)

	return ResourceArgs{
		KubeContext: kubeContext,
		Namespace:   namespace,
		Name:        name,
	}, nil
}

// ListArgs are the arguments shared by the list tools.
type ListArgs struct {
	KubeContext   string
	Namespace     string
	LabelSelector string
}

// ParseListArgs reads kubeContext, namespace and labelSelector from a
// request. An empty namespace lists across all namespaces.
func ParseListArgs(request mcp.CallToolRequest) ListArgs {
	args := request.GetArguments()

	kubeContext, _ := args["kubeContext"].(string)
	namespace, _ := args["namespace"].(string)
	labelSelector, _ := args["labelSelector"].(string)

	return ListArgs{
		KubeContext:   kubeContext,
		Namespace:     namespace,
		LabelSelector: labelSelector,
	}
}

// JSONResult marshals v as indented JSON into a text result. what names the
// payload in the error message.
func JSONResult(v any, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal %s: %v", what, err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
