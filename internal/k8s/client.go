package k8s

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Client defines the interface for Kubernetes operations used by the tools.
type Client interface {
	// Context Management Operations
	ContextManager

	// Resource Management Operations
	ResourceManager
}

// ContextManager handles Kubernetes context operations.
type ContextManager interface {
	// ListContexts returns all available Kubernetes contexts sorted by name.
	ListContexts(ctx context.Context) ([]ContextInfo, error)

	// GetCurrentContext returns the currently active context.
	GetCurrentContext(ctx context.Context) (*ContextInfo, error)

	// SwitchContext changes the active Kubernetes context.
	SwitchContext(ctx context.Context, contextName string) error
}

// ResourceManager handles Kubernetes resource operations.
type ResourceManager interface {
	// Get retrieves a specific resource by name and namespace.
	Get(ctx context.Context, kubeContext, namespace, resourceType, name string) (*unstructured.Unstructured, error)

	// List retrieves all resources of a type. An empty namespace lists
	// across all namespaces. Items keep the order returned by the API server.
	List(ctx context.Context, kubeContext, namespace, resourceType string, opts ListOptions) ([]*unstructured.Unstructured, error)

	// Delete removes a resource by name and namespace.
	Delete(ctx context.Context, kubeContext, namespace, resourceType, name string) error

	// Apply submits obj as a server-side apply patch. An empty resourceType
	// is resolved from the object's kind.
	Apply(ctx context.Context, kubeContext, namespace, resourceType, name string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
}

// ContextInfo represents information about a Kubernetes context.
type ContextInfo struct {
	Name      string `json:"name"`
	Cluster   string `json:"cluster"`
	User      string `json:"user"`
	Namespace string `json:"namespace"`
	Current   bool   `json:"current"`
}

// ListOptions provides configuration for list operations.
type ListOptions struct {
	LabelSelector string `json:"labelSelector,omitempty"`
	FieldSelector string `json:"fieldSelector,omitempty"`
	AllNamespaces bool   `json:"allNamespaces,omitempty"`
}

// Logger interface for client logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// OperationRecorder receives the outcome of every API call.
type OperationRecorder interface {
	RecordK8sOperation(ctx context.Context, operation, resourceType, namespace, status string, duration time.Duration)
}
