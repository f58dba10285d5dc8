package contexttools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools/testdata"
)

func setup(t *testing.T) (*testdata.MockK8sClient, map[string]*mcpserver.ServerTool) {
	t.Helper()
	client := testdata.NewMockK8sClient(nil)
	sc, err := server.NewServerContext(context.Background(),
		server.WithK8sClient(client),
		server.WithLogger(&testdata.MockLogger{}),
	)
	require.NoError(t, err)

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterContextTools(mcpSrv, sc))
	return client, mcpSrv.ListTools()
}

func call(t *testing.T, registered map[string]*mcpserver.ServerTool, name string, args map[string]interface{}) (*mcp.CallToolResult, string) {
	t.Helper()
	tool, ok := registered[name]
	require.True(t, ok, "tool %s should be registered", name)

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	result, err := tool.Handler(context.Background(), request)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return result, textContent.Text
}

func TestGetClusters(t *testing.T) {
	_, registered := setup(t)

	result, text := call(t, registered, "get_clusters", nil)
	require.False(t, result.IsError)
	assert.JSONEq(t, `["kind-test","prod-eu"]`, text)
}

func TestGetCurrentCluster(t *testing.T) {
	_, registered := setup(t)

	result, text := call(t, registered, "get_current_cluster", nil)
	require.False(t, result.IsError)

	var info k8s.ContextInfo
	require.NoError(t, json.Unmarshal([]byte(text), &info))
	assert.Equal(t, "kind-test", info.Name)
	assert.True(t, info.Current)
}

func TestUseCluster(t *testing.T) {
	client, registered := setup(t)

	result, text := call(t, registered, "use_cluster", map[string]interface{}{"contextName": "prod-eu"})
	require.False(t, result.IsError)
	assert.Equal(t, "Successfully switched to context: prod-eu", text)
	assert.Equal(t, []string{"prod-eu"}, client.Switched)

	_, text = call(t, registered, "get_current_cluster", nil)
	assert.Contains(t, text, `"prod-eu"`)
}

func TestUseCluster_Errors(t *testing.T) {
	_, registered := setup(t)

	result, text := call(t, registered, "use_cluster", map[string]interface{}{})
	assert.True(t, result.IsError)
	assert.Equal(t, "contextName is required", text)

	result, text = call(t, registered, "use_cluster", map[string]interface{}{"contextName": "missing"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "Failed to switch context")
}
