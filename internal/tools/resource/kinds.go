package resource

import (
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/giantswarm/kube-panel/internal/projection"
)

// Kind describes one resource table of the panel: which API resource backs
// it, how its rows are projected and which tools serve it.
type Kind struct {
	// ResourceType is the resource type passed to the Kubernetes client.
	ResourceType string

	// Singular and Plural are used in tool descriptions and messages.
	Singular string
	Plural   string

	ListTool   string
	YAMLTool   string
	DeleteTool string

	// Project turns list items into the rows returned by ListTool.
	Project func(items []*unstructured.Unstructured, now time.Time) (any, error)
}

func project[T any](fn func([]*unstructured.Unstructured, time.Time) ([]T, error)) func([]*unstructured.Unstructured, time.Time) (any, error) {
	return func(items []*unstructured.Unstructured, now time.Time) (any, error) {
		return fn(items, now)
	}
}

var (
	Pods = Kind{
		ResourceType: "pods",
		Singular:     "pod",
		Plural:       "pods",
		ListTool:     "get_pods",
		YAMLTool:     "get_pod_yaml",
		DeleteTool:   "delete_pod",
		Project:      project(projection.Pods),
	}

	Deployments = Kind{
		ResourceType: "deployments",
		Singular:     "deployment",
		Plural:       "deployments",
		ListTool:     "get_deployments",
		YAMLTool:     "get_deployment_yaml",
		DeleteTool:   "delete_deployment",
		Project:      project(projection.Deployments),
	}

	StatefulSets = Kind{
		ResourceType: "statefulsets",
		Singular:     "stateful set",
		Plural:       "stateful sets",
		ListTool:     "get_stateful_sets",
		YAMLTool:     "get_stateful_set_yaml",
		DeleteTool:   "delete_stateful_set",
		Project:      project(projection.StatefulSets),
	}

	DaemonSets = Kind{
		ResourceType: "daemonsets",
		Singular:     "daemon set",
		Plural:       "daemon sets",
		ListTool:     "get_daemon_sets",
		YAMLTool:     "get_daemon_set_yaml",
		DeleteTool:   "delete_daemon_set",
		Project:      project(projection.Minimals),
	}

	Services = Kind{
		ResourceType: "services",
		Singular:     "service",
		Plural:       "services",
		ListTool:     "get_services",
		YAMLTool:     "get_service_yaml",
		DeleteTool:   "delete_service",
		Project:      project(projection.Minimals),
	}
)

// WorkloadKinds are the tables registered by RegisterResourceTools. Pods are
// registered by the pod package.
var WorkloadKinds = []Kind{Deployments, StatefulSets, DaemonSets, Services}
