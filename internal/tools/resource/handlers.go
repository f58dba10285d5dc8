package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/logging"
	"github.com/giantswarm/kube-panel/internal/projection"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
)

// HandleList lists the kind and returns its projected rows as JSON.
func HandleList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, kind Kind) (*mcp.CallToolResult, error) {
	args := tools.ParseListArgs(request)

	items, err := sc.K8sClient().List(ctx, args.KubeContext, args.Namespace, kind.ResourceType, k8s.ListOptions{
		LabelSelector: args.LabelSelector,
		AllNamespaces: args.Namespace == "",
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list %s: %v", kind.Plural, err)), nil
	}

	rows, err := kind.Project(items, sc.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read %s: %v", kind.Plural, err)), nil
	}

	sc.Logger().Debug("Listed resources",
		logging.ResourceType(kind.ResourceType),
		logging.Namespace(args.Namespace),
		logging.Count(len(items)),
	)

	return tools.JSONResult(rows, kind.Plural)
}

// HandleGetYAML returns the full definition of one object as YAML.
func HandleGetYAML(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, kind Kind) (*mcp.CallToolResult, error) {
	args, errResult := tools.ParseResourceArgs(request, sc)
	if errResult != nil {
		return errResult, nil
	}

	obj, err := sc.K8sClient().Get(ctx, args.KubeContext, args.Namespace, kind.ResourceType, args.Name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get %s: %v", kind.Singular, err)), nil
	}

	text, err := projection.ToYAML(obj)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render %s as YAML: %v", kind.Singular, err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleDelete deletes one object.
func HandleDelete(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, kind Kind) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, k8s.OperationDelete); result != nil {
		return result, nil
	}

	args, errResult := tools.ParseResourceArgs(request, sc)
	if errResult != nil {
		return errResult, nil
	}

	if err := sc.K8sClient().Delete(ctx, args.KubeContext, args.Namespace, kind.ResourceType, args.Name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete %s: %v", kind.Singular, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted %s %s in namespace %s%s",
		kind.Singular, args.Name, args.Namespace, dryRunSuffix(sc))), nil
}

// ApplyManifest parses a YAML manifest and submits it as a server-side apply
// patch. An empty resourceType is resolved from the manifest's kind.
func ApplyManifest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, resourceType string) (*projection.ApplyRequest, *mcp.CallToolResult) {
	if result := tools.CheckMutatingOperation(sc, k8s.OperationApply); result != nil {
		return nil, result
	}

	args := request.GetArguments()
	text, _ := args["yaml"].(string)
	kubeContext, _ := args["kubeContext"].(string)

	req, err := projection.ParseApplyYAML(text)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Invalid manifest: %v", err))
	}

	if _, err := sc.K8sClient().Apply(ctx, kubeContext, req.Namespace, resourceType, req.Name, req.Object); err != nil {
		if errors.Is(err, k8s.ErrUnknownResourceType) {
			return nil, mcp.NewToolResultError(fmt.Sprintf("Unsupported kind %q: %v", req.Object.GetKind(), err))
		}
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to apply %s: %v", req.Name, err))
	}

	return req, nil
}

func handleApplyYAML(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	resourceType := request.GetString("resourceType", "")

	req, errResult := ApplyManifest(ctx, request, sc, resourceType)
	if errResult != nil {
		return errResult, nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully applied changes to %s %s in namespace %s%s",
		req.Object.GetKind(), req.Name, req.Namespace, dryRunSuffix(sc))), nil
}

func dryRunSuffix(sc *server.ServerContext) string {
	if sc.Config().DryRun {
		return " (dry run)"
	}
	return ""
}
