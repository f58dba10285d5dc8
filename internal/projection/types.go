package projection

import (
	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// DefaultUpdateStrategy is reported for stateful sets whose
// spec.updateStrategy.type is unset.
const DefaultUpdateStrategy = string(appsv1.RollingUpdateStatefulSetStrategyType)

// PodSummary is the row shown in the pods table.
type PodSummary struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Age       int64  `json:"age"`
	// Restarts is the restart count of the first container status only.
	Restarts int32  `json:"restarts"`
	IP       string `json:"ip"`
	Node     string `json:"node"`
}

// DeploymentSummary is the row shown in the deployments table.
type DeploymentSummary struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	// Ready is formatted as "ready/desired".
	Ready string `json:"ready"`
	Age   int64  `json:"age"`
}

// StatefulSetSummary is the row shown in the stateful sets table.
type StatefulSetSummary struct {
	Name           string `json:"name"`
	Namespace      string `json:"namespace"`
	Replicas       int32  `json:"replicas"`
	ReadyReplicas  int32  `json:"readyReplicas"`
	UpdateStrategy string `json:"updateStrategy"`
	Age            int64  `json:"age"`
}

// MinimalSummary is the shared shape for daemon sets and services.
type MinimalSummary struct {
	Name string `json:"name"`
	Age  int64  `json:"age"`
}

// ApplyRequest is a parsed manifest ready to be submitted as a server-side
// apply patch.
type ApplyRequest struct {
	Name      string                     `json:"name"`
	Namespace string                     `json:"namespace"`
	Object    *unstructured.Unstructured `json:"object"`
}
