package k8s

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
)

// ResourceManager implementation

// resourceInterface validates the request and returns the dynamic resource
// interface to call.
func (c *kubernetesClient) resourceInterface(operation, kubeContext, namespace, resourceType string) (dynamic.ResourceInterface, error) {
	if err := c.isOperationAllowed(operation); err != nil {
		return nil, err
	}

	if namespace != "" {
		if err := c.isNamespaceRestricted(namespace); err != nil {
			return nil, err
		}
	}

	mapping, err := c.resolveResourceType(resourceType)
	if err != nil {
		return nil, err
	}

	dynamicClient, err := c.getDynamicClient(kubeContext)
	if err != nil {
		return nil, err
	}

	if mapping.Namespaced && namespace != "" {
		return dynamicClient.Resource(mapping.GVR).Namespace(namespace), nil
	}
	return dynamicClient.Resource(mapping.GVR), nil
}

func (c *kubernetesClient) dryRunOptions() []string {
	if c.dryRun {
		return []string{metav1.DryRunAll}
	}
	return nil
}

// Get retrieves a specific resource by name and namespace.
func (c *kubernetesClient) Get(ctx context.Context, kubeContext, namespace, resourceType, name string) (obj *unstructured.Unstructured, err error) {
	start := time.Now()
	defer func() { c.recordOperation(ctx, OperationGet, resourceType, namespace, start, err) }()

	c.logOperation(OperationGet, kubeContext, namespace, resourceType, name)

	ri, err := c.resourceInterface(OperationGet, kubeContext, namespace, resourceType)
	if err != nil {
		return nil, err
	}

	obj, err = ri.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %q: %w", resourceType, name, err)
	}

	return obj, nil
}

// List retrieves all resources of a specific type in a namespace, or across
// all namespaces when namespace is empty or opts.AllNamespaces is set.
func (c *kubernetesClient) List(ctx context.Context, kubeContext, namespace, resourceType string, opts ListOptions) (items []*unstructured.Unstructured, err error) {
	start := time.Now()
	defer func() { c.recordOperation(ctx, OperationList, resourceType, namespace, start, err) }()

	if opts.AllNamespaces {
		namespace = ""
	}

	c.logOperation(OperationList, kubeContext, namespace, resourceType, "")

	ri, err := c.resourceInterface(OperationList, kubeContext, namespace, resourceType)
	if err != nil {
		return nil, err
	}

	list, err := ri.List(ctx, metav1.ListOptions{
		LabelSelector: opts.LabelSelector,
		FieldSelector: opts.FieldSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", resourceType, err)
	}

	items = make([]*unstructured.Unstructured, 0, len(list.Items))
	for i := range list.Items {
		// Cluster-wide lists must not leak objects from restricted namespaces.
		if slices.Contains(c.restrictedNamespaces, list.Items[i].GetNamespace()) {
			continue
		}
		items = append(items, &list.Items[i])
	}

	if c.config.DebugMode && c.config.Logger != nil {
		c.config.Logger.Debug("listed resources", "resourceType", resourceType, "namespace", namespace, "count", len(items))
	}

	return items, nil
}

// Delete removes a resource by name and namespace.
func (c *kubernetesClient) Delete(ctx context.Context, kubeContext, namespace, resourceType, name string) (err error) {
	start := time.Now()
	defer func() { c.recordOperation(ctx, OperationDelete, resourceType, namespace, start, err) }()

	c.logOperation(OperationDelete, kubeContext, namespace, resourceType, name)

	ri, err := c.resourceInterface(OperationDelete, kubeContext, namespace, resourceType)
	if err != nil {
		return err
	}

	if err = ri.Delete(ctx, name, metav1.DeleteOptions{DryRun: c.dryRunOptions()}); err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", resourceType, name, err)
	}

	return nil
}

// Apply submits obj as a server-side apply patch owned by ApplyFieldManager,
// forcing ownership of conflicting fields.
func (c *kubernetesClient) Apply(ctx context.Context, kubeContext, namespace, resourceType, name string, obj *unstructured.Unstructured) (result *unstructured.Unstructured, err error) {
	if obj == nil {
		return nil, fmt.Errorf("object to apply is required")
	}
	if resourceType == "" {
		resourceType = obj.GetKind()
	}

	start := time.Now()
	defer func() { c.recordOperation(ctx, OperationApply, resourceType, namespace, start, err) }()

	c.logOperation(OperationApply, kubeContext, namespace, resourceType, name)

	ri, err := c.resourceInterface(OperationApply, kubeContext, namespace, resourceType)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(obj.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %q: %w", resourceType, name, err)
	}

	force := true
	result, err = ri.Patch(ctx, name, types.ApplyPatchType, data, metav1.PatchOptions{
		FieldManager: ApplyFieldManager,
		Force:        &force,
		DryRun:       c.dryRunOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s %q: %w", resourceType, name, err)
	}

	return result, nil
}
