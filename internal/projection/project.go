package projection

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Pod projects a pod object.
func Pod(obj *unstructured.Unstructured, now time.Time) (PodSummary, error) {
	age, err := ageOf(obj, now)
	if err != nil {
		return PodSummary{}, err
	}
	o := obj.Object

	var restarts int32
	if first := firstElemAt(o, "status", "containerStatuses"); first != nil {
		restarts = int32At(first, "restartCount")
	}

	return PodSummary{
		Name:      stringAt(o, "metadata", "name"),
		Namespace: stringAt(o, "metadata", "namespace"),
		Status:    stringAt(o, "status", "phase"),
		Age:       age,
		Restarts:  restarts,
		IP:        stringAt(o, "status", "podIP"),
		Node:      stringAt(o, "spec", "nodeName"),
	}, nil
}

// Deployment projects a deployment object.
func Deployment(obj *unstructured.Unstructured, now time.Time) (DeploymentSummary, error) {
	age, err := ageOf(obj, now)
	if err != nil {
		return DeploymentSummary{}, err
	}
	o := obj.Object

	ready := int32At(o, "status", "readyReplicas")
	desired := int32At(o, "spec", "replicas")

	return DeploymentSummary{
		Name:      stringAt(o, "metadata", "name"),
		Namespace: stringAt(o, "metadata", "namespace"),
		Ready:     fmt.Sprintf("%d/%d", ready, desired),
		Age:       age,
	}, nil
}

// StatefulSet projects a stateful set object.
func StatefulSet(obj *unstructured.Unstructured, now time.Time) (StatefulSetSummary, error) {
	age, err := ageOf(obj, now)
	if err != nil {
		return StatefulSetSummary{}, err
	}
	o := obj.Object

	strategy := stringAt(o, "spec", "updateStrategy", "type")
	if strategy == "" {
		strategy = DefaultUpdateStrategy
	}

	return StatefulSetSummary{
		Name:           stringAt(o, "metadata", "name"),
		Namespace:      stringAt(o, "metadata", "namespace"),
		Replicas:       int32At(o, "spec", "replicas"),
		ReadyReplicas:  int32At(o, "status", "readyReplicas"),
		UpdateStrategy: strategy,
		Age:            age,
	}, nil
}

// Minimal projects any object to its name and age. It is used for daemon
// sets and services.
func Minimal(obj *unstructured.Unstructured, now time.Time) (MinimalSummary, error) {
	age, err := ageOf(obj, now)
	if err != nil {
		return MinimalSummary{}, err
	}
	return MinimalSummary{
		Name: stringAt(obj.Object, "metadata", "name"),
		Age:  age,
	}, nil
}
