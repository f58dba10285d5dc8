package pod

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/giantswarm/kube-panel/internal/projection"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/tools/testdata"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func toUnstructured(t *testing.T, pod *corev1.Pod) *unstructured.Unstructured {
	t.Helper()
	pod.APIVersion = "v1"
	pod.Kind = "Pod"
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(pod)
	require.NoError(t, err)
	return &unstructured.Unstructured{Object: content}
}

func runningPod(t *testing.T) *unstructured.Unstructured {
	return toUnstructured(t, &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              "web-7d9f",
			Namespace:         "web",
			CreationTimestamp: metav1.NewTime(testNow.Add(-90 * time.Second)),
		},
		Spec: corev1.PodSpec{NodeName: "node-a"},
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			PodIP: "10.0.0.12",
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "app", RestartCount: 4},
				{Name: "sidecar", RestartCount: 9},
			},
		},
	})
}

func newTestServerContext(t *testing.T, client *testdata.MockK8sClient, cfg *server.Config) *server.ServerContext {
	t.Helper()
	if cfg == nil {
		cfg = server.NewDefaultConfig()
	}
	sc, err := server.NewServerContext(context.Background(),
		server.WithK8sClient(client),
		server.WithLogger(&testdata.MockLogger{}),
		server.WithConfig(cfg),
		server.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return sc
}

func callTool(t *testing.T, sc *server.ServerContext, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterPodTools(mcpSrv, sc))

	tool := mcpSrv.ListTools()[name]
	require.NotNil(t, tool, "tool %s should be registered", name)

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	result, err := tool.Handler(context.Background(), request)
	require.NoError(t, err)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestGetPods(t *testing.T) {
	client := testdata.NewMockK8sClient(map[string][]*unstructured.Unstructured{
		"pods": {runningPod(t)},
	})
	sc := newTestServerContext(t, client, nil)

	result := callTool(t, sc, "get_pods", map[string]interface{}{"namespace": "web"})
	require.False(t, result.IsError, text(t, result))

	var rows []projection.PodSummary
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &rows))
	assert.Equal(t, []projection.PodSummary{{
		Name:      "web-7d9f",
		Namespace: "web",
		Status:    "Running",
		Age:       90,
		Restarts:  4,
		IP:        "10.0.0.12",
		Node:      "node-a",
	}}, rows)
}

func TestGetPodYAMLAndDefinitionMatch(t *testing.T) {
	client := testdata.NewMockK8sClient(map[string][]*unstructured.Unstructured{
		"pods": {runningPod(t)},
	})
	sc := newTestServerContext(t, client, nil)
	args := map[string]interface{}{"name": "web-7d9f", "namespace": "web"}

	yamlResult := callTool(t, sc, "get_pod_yaml", args)
	definitionResult := callTool(t, sc, "get_pod_definition", args)

	assert.Contains(t, text(t, yamlResult), "podIP: 10.0.0.12")
	assert.Equal(t, text(t, yamlResult), text(t, definitionResult))
}

func TestDeletePod(t *testing.T) {
	client := testdata.NewMockK8sClient(nil)
	sc := newTestServerContext(t, client, nil)

	result := callTool(t, sc, "delete_pod", map[string]interface{}{"name": "web-7d9f", "namespace": "web"})
	assert.Equal(t, "Successfully deleted pod web-7d9f in namespace web", text(t, result))
	require.Len(t, client.Deleted, 1)
	assert.Equal(t, "pods", client.Deleted[0].ResourceType)
}

const podYAML = `apiVersion: v1
kind: Pod
metadata:
  name: web-7d9f
  namespace: web
spec:
  containers:
  - name: app
    image: nginx:1.27
`

func TestApplyPodYAML(t *testing.T) {
	client := testdata.NewMockK8sClient(nil)
	sc := newTestServerContext(t, client, nil)

	result := callTool(t, sc, "apply_pod_yaml", map[string]interface{}{"yaml": podYAML})
	require.False(t, result.IsError, text(t, result))
	assert.Equal(t, "Successfully applied changes to pod web-7d9f in namespace web", text(t, result))

	require.Len(t, client.Applied, 1)
	assert.Equal(t, "pods", client.Applied[0].ResourceType)
	assert.Equal(t, "web-7d9f", client.Applied[0].Name)
	assert.Equal(t, "web", client.Applied[0].Namespace)
}

func TestApplyPodYAML_MissingName(t *testing.T) {
	client := testdata.NewMockK8sClient(nil)
	sc := newTestServerContext(t, client, nil)

	result := callTool(t, sc, "apply_pod_yaml", map[string]interface{}{
		"yaml": "apiVersion: v1\nkind: Pod\nmetadata:\n  namespace: web\n",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "metadata.name")
	assert.Empty(t, client.Applied)
}

func TestApplyPodYAML_BlockedInNonDestructiveMode(t *testing.T) {
	client := testdata.NewMockK8sClient(nil)
	cfg := server.NewDefaultConfig()
	cfg.NonDestructiveMode = true
	sc := newTestServerContext(t, client, cfg)

	result := callTool(t, sc, "apply_pod_yaml", map[string]interface{}{"yaml": podYAML})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "Apply is disabled")
	assert.Empty(t, client.Applied)
}

func TestRegisterPodTools(t *testing.T) {
	sc := newTestServerContext(t, testdata.NewMockK8sClient(nil), nil)
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterPodTools(mcpSrv, sc))

	registered := mcpSrv.ListTools()
	for _, name := range []string{"get_pods", "get_pod_yaml", "get_pod_definition", "delete_pod", "apply_pod_yaml"} {
		assert.Contains(t, registered, name)
	}
}
