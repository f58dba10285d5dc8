// Package integration provides end-to-end tests for kube-panel.
//
// These tests serve the panel's tools over the streamable HTTP transport and
// call them with the mcp-go client. The cluster is a mock, so no kubeconfig
// is needed.
//
// Run with: go test -v ./tests/integration/... -tags=integration
//
//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools/cluster"
	contexttools "github.com/giantswarm/kube-panel/internal/tools/context"
	"github.com/giantswarm/kube-panel/internal/tools/pod"
	"github.com/giantswarm/kube-panel/internal/tools/resource"
	"github.com/giantswarm/kube-panel/internal/tools/testdata"
)

func fixtures() map[string][]*unstructured.Unstructured {
	return map[string][]*unstructured.Unstructured{
		"pods": {
			testdata.Object("v1", "Pod", "default", "web-1", map[string]interface{}{
				"metadata": map[string]interface{}{
					"creationTimestamp": "2024-01-01T00:00:00Z",
				},
				"status": map[string]interface{}{
					"phase": "Running",
				},
			}),
		},
		"namespaces": {
			testdata.Object("v1", "Namespace", "", "default", nil),
			testdata.Object("v1", "Namespace", "", "kube-system", nil),
		},
	}
}

// startPanel serves every tool over streamable HTTP and returns an
// initialized client.
func startPanel(t *testing.T, ctx context.Context, opts ...server.Option) (*client.Client, *testdata.MockK8sClient) {
	t.Helper()

	k8sClient := testdata.NewMockK8sClient(fixtures())
	opts = append([]server.Option{
		server.WithK8sClient(k8sClient),
		server.WithLogger(&testdata.MockLogger{}),
		server.WithClock(func() time.Time { return time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC) }),
	}, opts...)

	sc, err := server.NewServerContext(ctx, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	mcpSrv := mcpserver.NewMCPServer("kube-panel", "test", mcpserver.WithToolCapabilities(true))
	require.NoError(t, pod.RegisterPodTools(mcpSrv, sc))
	require.NoError(t, resource.RegisterResourceTools(mcpSrv, sc))
	require.NoError(t, contexttools.RegisterContextTools(mcpSrv, sc))
	require.NoError(t, cluster.RegisterClusterTools(mcpSrv, sc))

	httpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv, mcpserver.WithEndpointPath("/mcp"))
	ts := httptest.NewServer(httpHandler)
	t.Cleanup(ts.Close)

	mcpClient, err := client.NewStreamableHttpClient(ts.URL + "/mcp")
	require.NoError(t, err, "Failed to create MCP client")
	require.NoError(t, mcpClient.Start(ctx), "Failed to start MCP client transport")
	t.Cleanup(func() { _ = mcpClient.Close() })

	_, err = mcpClient.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "integration-test",
				Version: "1.0.0",
			},
		},
	})
	require.NoError(t, err, "Failed to initialize MCP client")

	return mcpClient, k8sClient
}

func callTool(t *testing.T, ctx context.Context, c *client.Client, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	result, err := c.CallTool(ctx, mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	require.NoError(t, err, "Failed to call %s", name)
	require.NotEmpty(t, result.Content)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return textContent.Text
}

func TestStreamableHTTPToolList(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mcpClient, _ := startPanel(t, ctx)

	toolsResp, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make(map[string]bool, len(toolsResp.Tools))
	for _, tool := range toolsResp.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"get_pods", "get_pod_yaml", "delete_pod", "apply_yaml", "get_clusters", "use_cluster", "get_namespaces"} {
		assert.True(t, names[name], "tool %s should be listed", name)
	}
}

func TestStreamableHTTPPodsAndNamespaces(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mcpClient, _ := startPanel(t, ctx)

	result := callTool(t, ctx, mcpClient, "get_pods", map[string]interface{}{"namespace": "default"})
	require.False(t, result.IsError, text(t, result))

	var pods []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &pods))
	require.Len(t, pods, 1)
	assert.Equal(t, "web-1", pods[0]["name"])
	assert.Equal(t, "Running", pods[0]["status"])

	result = callTool(t, ctx, mcpClient, "get_namespaces", nil)
	require.False(t, result.IsError, text(t, result))
	assert.JSONEq(t, `["default","kube-system"]`, text(t, result))

	result = callTool(t, ctx, mcpClient, "get_pod_yaml", map[string]interface{}{"namespace": "default", "name": "web-1"})
	require.False(t, result.IsError, text(t, result))
	assert.Contains(t, text(t, result), "name: web-1")
}

func TestStreamableHTTPContextSwitch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mcpClient, k8sClient := startPanel(t, ctx)

	result := callTool(t, ctx, mcpClient, "use_cluster", map[string]interface{}{"contextName": "prod-eu"})
	require.False(t, result.IsError, text(t, result))
	assert.Equal(t, "Successfully switched to context: prod-eu", text(t, result))

	result = callTool(t, ctx, mcpClient, "get_current_cluster", nil)
	require.False(t, result.IsError, text(t, result))
	assert.Contains(t, text(t, result), `"prod-eu"`)
	assert.Equal(t, []string{"prod-eu"}, k8sClient.Switched)
}

func TestStreamableHTTPNonDestructiveMode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mcpClient, k8sClient := startPanel(t, ctx, server.WithNonDestructiveMode(true))

	result := callTool(t, ctx, mcpClient, "delete_pod", map[string]interface{}{"namespace": "default", "name": "web-1"})
	assert.True(t, result.IsError)
	assert.True(t, strings.Contains(text(t, result), "non-destructive"), text(t, result))
	assert.Empty(t, k8sClient.Deleted)
}

func TestStreamableHTTPTimeout(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("kube-panel", "test", mcpserver.WithToolCapabilities(true))
	mcpSrv.AddTool(mcp.NewTool("slow_tool"), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		select {
		case <-time.After(10 * time.Second):
			return mcp.NewToolResultText("Done after delay"), nil
		case <-ctx.Done():
			return mcp.NewToolResultError("cancelled"), ctx.Err()
		}
	})

	ts := httptest.NewServer(mcpserver.NewStreamableHTTPServer(mcpSrv, mcpserver.WithEndpointPath("/mcp")))
	defer ts.Close()

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCancel()

	mcpClient, err := client.NewStreamableHttpClient(ts.URL + "/mcp")
	require.NoError(t, err)
	require.NoError(t, mcpClient.Start(initCtx))
	defer mcpClient.Close()

	_, err = mcpClient.Initialize(initCtx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "timeout-test", Version: "1.0.0"},
		},
	})
	require.NoError(t, err)

	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()

	_, err = mcpClient.CallTool(callCtx, mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params:  mcp.CallToolParams{Name: "slow_tool"},
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context deadline exceeded") ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "canceled"),
		"Expected timeout-related error, got: %v", err)
}

// TestMain sets up logging for integration tests
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	os.Exit(m.Run())
}
