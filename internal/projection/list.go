package projection

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ProjectFunc projects a single object.
type ProjectFunc[T any] func(obj *unstructured.Unstructured, now time.Time) (T, error)

// List projects every item with fn, preserving input order. The result is
// never nil. If any item fails, no partial result is returned.
func List[T any](items []*unstructured.Unstructured, now time.Time, fn ProjectFunc[T]) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		s, err := fn(item, now)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Pods projects a list of pods.
func Pods(items []*unstructured.Unstructured, now time.Time) ([]PodSummary, error) {
	return List(items, now, Pod)
}

// Deployments projects a list of deployments.
func Deployments(items []*unstructured.Unstructured, now time.Time) ([]DeploymentSummary, error) {
	return List(items, now, Deployment)
}

// StatefulSets projects a list of stateful sets.
func StatefulSets(items []*unstructured.Unstructured, now time.Time) ([]StatefulSetSummary, error) {
	return List(items, now, StatefulSet)
}

// Minimals projects a list of daemon sets or services.
func Minimals(items []*unstructured.Unstructured, now time.Time) ([]MinimalSummary, error) {
	return List(items, now, Minimal)
}

// Names returns metadata.name of each item in order. Items without a name
// are skipped.
func Names(items []*unstructured.Unstructured) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if name := stringAt(item.Object, "metadata", "name"); name != "" {
			out = append(out, name)
		}
	}
	return out
}
