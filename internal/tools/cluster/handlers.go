package cluster

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/projection"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools"
	"github.com/giantswarm/kube-panel/internal/tools/resource"
)

// overviewKinds are counted by get_overview.
var overviewKinds = []resource.Kind{
	resource.Pods,
	resource.Deployments,
	resource.StatefulSets,
	resource.DaemonSets,
	resource.Services,
}

// Overview is the result of get_overview.
type Overview struct {
	Context   string `json:"context"`
	Namespace string `json:"namespace,omitempty"`

	// Counts maps a resource type to the number of objects.
	Counts map[string]int `json:"counts"`

	// PodPhases maps a pod phase to the number of pods in it.
	PodPhases map[string]int `json:"podPhases"`
}

func handleGetNamespaces(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	kubeContext := request.GetString("kubeContext", "")

	items, err := sc.K8sClient().List(ctx, kubeContext, "", "namespaces", k8s.ListOptions{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list namespaces: %v", err)), nil
	}

	return tools.JSONResult(projection.Names(items), "namespaces")
}

// handleGetOverview lists every overview kind concurrently. Any failing
// list fails the whole overview.
func handleGetOverview(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := tools.ParseListArgs(request)
	client := sc.K8sClient()

	overview := Overview{
		Context:   args.KubeContext,
		Namespace: args.Namespace,
		Counts:    make(map[string]int, len(overviewKinds)),
		PodPhases: map[string]int{},
	}

	var (
		mu   sync.Mutex
		pods []*unstructured.Unstructured
	)

	g, gctx := errgroup.WithContext(ctx)

	if overview.Context == "" {
		g.Go(func() error {
			current, err := client.GetCurrentContext(gctx)
			if err != nil {
				return fmt.Errorf("current context: %w", err)
			}
			mu.Lock()
			overview.Context = current.Name
			mu.Unlock()
			return nil
		})
	}

	for _, kind := range overviewKinds {
		g.Go(func() error {
			items, err := client.List(gctx, args.KubeContext, args.Namespace, kind.ResourceType, k8s.ListOptions{
				AllNamespaces: args.Namespace == "",
			})
			if err != nil {
				return fmt.Errorf("%s: %w", kind.Plural, err)
			}

			mu.Lock()
			defer mu.Unlock()
			overview.Counts[kind.ResourceType] = len(items)
			if kind.ResourceType == resource.Pods.ResourceType {
				pods = items
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build overview: %v", err)), nil
	}

	rows, err := projection.Pods(pods, sc.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read pods: %v", err)), nil
	}
	for _, row := range rows {
		phase := row.Status
		if phase == "" {
			phase = "Unknown"
		}
		overview.PodPhases[phase]++
	}

	return tools.JSONResult(overview, "overview")
}
