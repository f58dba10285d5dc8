// Package testdata provides mock implementations for testing the tool packages.
package testdata

import (
	"context"
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/server"
)

// Compile-time interface compliance checks.
var (
	_ k8s.Client    = (*MockK8sClient)(nil)
	_ server.Logger = (*MockLogger)(nil)
)

// AppliedObject records one Apply call.
type AppliedObject struct {
	KubeContext  string
	Namespace    string
	ResourceType string
	Name         string
	Object       *unstructured.Unstructured
}

// DeletedObject records one Delete call.
type DeletedObject struct {
	KubeContext  string
	Namespace    string
	ResourceType string
	Name         string
}

// MockK8sClient implements k8s.Client over an in-memory object store keyed
// by the resource type string the caller passes. It is safe for concurrent
// use.
type MockK8sClient struct {
	mu sync.Mutex

	// Objects holds the items returned by Get and List, per resource type.
	Objects map[string][]*unstructured.Unstructured

	Contexts       []k8s.ContextInfo
	CurrentContext string

	// Err, when set, is returned by every resource operation.
	Err error

	Applied  []AppliedObject
	Deleted  []DeletedObject
	Listed   []k8s.ListOptions
	Switched []string
}

// NewMockK8sClient creates a mock holding the given objects.
func NewMockK8sClient(objects map[string][]*unstructured.Unstructured) *MockK8sClient {
	if objects == nil {
		objects = map[string][]*unstructured.Unstructured{}
	}
	return &MockK8sClient{
		Objects:        objects,
		CurrentContext: "kind-test",
		Contexts: []k8s.ContextInfo{
			{Name: "kind-test", Cluster: "kind-test", Namespace: "default", Current: true},
			{Name: "prod-eu", Cluster: "prod-eu", Namespace: "default"},
		},
	}
}

// ListContexts implements k8s.ContextManager.
func (m *MockK8sClient) ListContexts(_ context.Context) ([]k8s.ContextInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	contexts := make([]k8s.ContextInfo, len(m.Contexts))
	for i, c := range m.Contexts {
		c.Current = c.Name == m.CurrentContext
		contexts[i] = c
	}
	return contexts, nil
}

// GetCurrentContext implements k8s.ContextManager.
func (m *MockK8sClient) GetCurrentContext(_ context.Context) (*k8s.ContextInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Contexts {
		if c.Name == m.CurrentContext {
			c.Current = true
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", k8s.ErrContextNotFound, m.CurrentContext)
}

// SwitchContext implements k8s.ContextManager.
func (m *MockK8sClient) SwitchContext(_ context.Context, contextName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Contexts {
		if c.Name == contextName {
			m.CurrentContext = contextName
			m.Switched = append(m.Switched, contextName)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", k8s.ErrContextNotFound, contextName)
}

// Get implements k8s.ResourceManager.
func (m *MockK8sClient) Get(_ context.Context, _, namespace, resourceType, name string) (*unstructured.Unstructured, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, obj := range m.Objects[resourceType] {
		if obj.GetName() == name && obj.GetNamespace() == namespace {
			return obj.DeepCopy(), nil
		}
	}
	return nil, fmt.Errorf("%s %q not found in namespace %q", resourceType, name, namespace)
}

// List implements k8s.ResourceManager. An empty namespace matches every item.
func (m *MockK8sClient) List(_ context.Context, _, namespace, resourceType string, opts k8s.ListOptions) ([]*unstructured.Unstructured, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Listed = append(m.Listed, opts)
	if m.Err != nil {
		return nil, m.Err
	}

	items := []*unstructured.Unstructured{}
	for _, obj := range m.Objects[resourceType] {
		if namespace == "" || opts.AllNamespaces || obj.GetNamespace() == namespace {
			items = append(items, obj.DeepCopy())
		}
	}
	return items, nil
}

// Delete implements k8s.ResourceManager.
func (m *MockK8sClient) Delete(_ context.Context, kubeContext, namespace, resourceType, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, DeletedObject{
		KubeContext:  kubeContext,
		Namespace:    namespace,
		ResourceType: resourceType,
		Name:         name,
	})
	return nil
}

// Apply implements k8s.ResourceManager. The submitted object is echoed back.
func (m *MockK8sClient) Apply(_ context.Context, kubeContext, namespace, resourceType, name string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	m.Applied = append(m.Applied, AppliedObject{
		KubeContext:  kubeContext,
		Namespace:    namespace,
		ResourceType: resourceType,
		Name:         name,
		Object:       obj,
	})
	return obj.DeepCopy(), nil
}

// MockLogger implements server.Logger and discards everything.
type MockLogger struct{}

func (m *MockLogger) Info(_ string, _ ...any)  {}
func (m *MockLogger) Debug(_ string, _ ...any) {}
func (m *MockLogger) Warn(_ string, _ ...any)  {}
func (m *MockLogger) Error(_ string, _ ...any) {}

// Object builds an unstructured object of the given kind for fixtures.
func Object(apiVersion, kind, namespace, name string, fields map[string]interface{}) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{}}
	for k, v := range fields {
		obj.Object[k] = v
	}
	obj.SetAPIVersion(apiVersion)
	obj.SetKind(kind)
	obj.SetName(name)
	if namespace != "" {
		obj.SetNamespace(namespace)
	}
	return obj
}
