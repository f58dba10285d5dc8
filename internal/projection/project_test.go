package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func toUnstructured(t *testing.T, obj runtime.Object) *unstructured.Unstructured {
	t.Helper()
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	require.NoError(t, err)
	return &unstructured.Unstructured{Object: content}
}

func int32Ptr(i int32) *int32 { return &i }

func TestPod(t *testing.T) {
	tests := []struct {
		name     string
		pod      *corev1.Pod
		expected PodSummary
	}{
		{
			name: "fully populated pod",
			pod: &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{
					Name:              "web-0",
					Namespace:         "shop",
					CreationTimestamp: metav1.NewTime(testNow.Add(-10 * time.Minute)),
				},
				Spec: corev1.PodSpec{NodeName: "node-a"},
				Status: corev1.PodStatus{
					Phase: corev1.PodRunning,
					PodIP: "10.0.0.7",
					ContainerStatuses: []corev1.ContainerStatus{
						{Name: "app", RestartCount: 4},
						{Name: "sidecar", RestartCount: 9},
					},
				},
			},
			expected: PodSummary{
				Name:      "web-0",
				Namespace: "shop",
				Status:    "Running",
				Age:       600,
				Restarts:  4,
				IP:        "10.0.0.7",
				Node:      "node-a",
			},
		},
		{
			name: "pending pod without status details",
			pod: &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "pending", Namespace: "default"},
			},
			expected: PodSummary{Name: "pending", Namespace: "default"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pod(toUnstructured(t, tt.pod), testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPod_MissingMetadata(t *testing.T) {
	_, err := Pod(&unstructured.Unstructured{Object: map[string]interface{}{"status": map[string]interface{}{}}}, testNow)
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Pod(nil, testNow)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestPod_WrongTypedFields(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"metadata": map[string]interface{}{
			"name":      int64(123),
			"namespace": "shop",
		},
		"spec":   map[string]interface{}{"nodeName": []interface{}{"node-a"}},
		"status": "oops",
	}}

	var got PodSummary
	var err error
	require.NotPanics(t, func() { got, err = Pod(obj, testNow) })
	require.NoError(t, err)
	assert.Equal(t, PodSummary{Namespace: "shop"}, got)

	obj.Object["status"] = map[string]interface{}{
		"phase":             int64(1),
		"containerStatuses": []interface{}{"x"},
	}
	require.NotPanics(t, func() { got, err = Pod(obj, testNow) })
	require.NoError(t, err)
	assert.Equal(t, PodSummary{Namespace: "shop"}, got)
}

func TestDeployment(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]interface{}
		expected DeploymentSummary
	}{
		{
			name: "ready and desired replicas",
			obj: map[string]interface{}{
				"metadata": map[string]interface{}{"name": "api", "namespace": "shop"},
				"spec":     map[string]interface{}{"replicas": int64(5)},
				"status":   map[string]interface{}{"readyReplicas": int64(3)},
			},
			expected: DeploymentSummary{Name: "api", Namespace: "shop", Ready: "3/5"},
		},
		{
			name: "no spec and no status",
			obj: map[string]interface{}{
				"metadata": map[string]interface{}{"name": "api"},
			},
			expected: DeploymentSummary{Name: "api", Ready: "0/0"},
		},
		{
			name: "float replicas from YAML decoding",
			obj: map[string]interface{}{
				"metadata": map[string]interface{}{"name": "api", "namespace": "shop"},
				"spec":     map[string]interface{}{"replicas": float64(2)},
				"status":   map[string]interface{}{"readyReplicas": float64(2)},
			},
			expected: DeploymentSummary{Name: "api", Namespace: "shop", Ready: "2/2"},
		},
		{
			name: "string replicas count as absent",
			obj: map[string]interface{}{
				"metadata": map[string]interface{}{"name": "api", "namespace": "shop"},
				"spec":     map[string]interface{}{"replicas": "5"},
				"status":   map[string]interface{}{"readyReplicas": int64(1)},
			},
			expected: DeploymentSummary{Name: "api", Namespace: "shop", Ready: "1/0"},
		},
		{
			name: "status of the wrong type",
			obj: map[string]interface{}{
				"metadata": map[string]interface{}{"name": "api"},
				"spec":     "broken",
				"status":   "oops",
			},
			expected: DeploymentSummary{Name: "api", Ready: "0/0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Deployment(&unstructured.Unstructured{Object: tt.obj}, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStatefulSet(t *testing.T) {
	t.Run("defaults update strategy", func(t *testing.T) {
		sts := &appsv1.StatefulSet{
			ObjectMeta: metav1.ObjectMeta{
				Name:              "db",
				Namespace:         "data",
				CreationTimestamp: metav1.NewTime(testNow.Add(-time.Hour)),
			},
			Spec:   appsv1.StatefulSetSpec{Replicas: int32Ptr(3)},
			Status: appsv1.StatefulSetStatus{ReadyReplicas: 2},
		}

		got, err := StatefulSet(toUnstructured(t, sts), testNow)
		require.NoError(t, err)
		assert.Equal(t, StatefulSetSummary{
			Name:           "db",
			Namespace:      "data",
			Replicas:       3,
			ReadyReplicas:  2,
			UpdateStrategy: "RollingUpdate",
			Age:            3600,
		}, got)
	})

	t.Run("explicit update strategy", func(t *testing.T) {
		sts := &appsv1.StatefulSet{
			ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: "data"},
			Spec: appsv1.StatefulSetSpec{
				UpdateStrategy: appsv1.StatefulSetUpdateStrategy{Type: appsv1.OnDeleteStatefulSetStrategyType},
			},
		}

		got, err := StatefulSet(toUnstructured(t, sts), testNow)
		require.NoError(t, err)
		assert.Equal(t, "OnDelete", got.UpdateStrategy)
		assert.Zero(t, got.Replicas)
	})
}

func TestMinimal(t *testing.T) {
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:              "frontend",
			Namespace:         "shop",
			CreationTimestamp: metav1.NewTime(testNow.Add(-42 * time.Second)),
		},
	}

	got, err := Minimal(toUnstructured(t, svc), testNow)
	require.NoError(t, err)
	assert.Equal(t, MinimalSummary{Name: "frontend", Age: 42}, got)
}
