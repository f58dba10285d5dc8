package k8s

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// resourceMapping describes how a resource type alias is addressed.
type resourceMapping struct {
	GVR        schema.GroupVersionResource
	Namespaced bool
}

var (
	podsGVR         = schema.GroupVersionResource{Version: "v1", Resource: "pods"}
	servicesGVR     = schema.GroupVersionResource{Version: "v1", Resource: "services"}
	namespacesGVR   = schema.GroupVersionResource{Version: "v1", Resource: "namespaces"}
	nodesGVR        = schema.GroupVersionResource{Version: "v1", Resource: "nodes"}
	configMapsGVR   = schema.GroupVersionResource{Version: "v1", Resource: "configmaps"}
	deploymentsGVR  = schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "deployments"}
	statefulSetsGVR = schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "statefulsets"}
	daemonSetsGVR   = schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "daemonsets"}
	replicaSetsGVR  = schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "replicasets"}
)

// initBuiltinResources initializes the builtin resources mapping. Singular
// aliases double as lower-cased kinds so a manifest's kind resolves directly.
func initBuiltinResources() map[string]resourceMapping {
	namespaced := func(gvr schema.GroupVersionResource) resourceMapping {
		return resourceMapping{GVR: gvr, Namespaced: true}
	}
	clusterScoped := func(gvr schema.GroupVersionResource) resourceMapping {
		return resourceMapping{GVR: gvr}
	}

	return map[string]resourceMapping{
		// Core/v1 resources
		"pods":       namespaced(podsGVR),
		"pod":        namespaced(podsGVR),
		"po":         namespaced(podsGVR),
		"services":   namespaced(servicesGVR),
		"service":    namespaced(servicesGVR),
		"svc":        namespaced(servicesGVR),
		"configmaps": namespaced(configMapsGVR),
		"configmap":  namespaced(configMapsGVR),
		"cm":         namespaced(configMapsGVR),
		"namespaces": clusterScoped(namespacesGVR),
		"namespace":  clusterScoped(namespacesGVR),
		"ns":         clusterScoped(namespacesGVR),
		"nodes":      clusterScoped(nodesGVR),
		"node":       clusterScoped(nodesGVR),

		// Apps/v1 resources
		"deployments":  namespaced(deploymentsGVR),
		"deployment":   namespaced(deploymentsGVR),
		"deploy":       namespaced(deploymentsGVR),
		"statefulsets": namespaced(statefulSetsGVR),
		"statefulset":  namespaced(statefulSetsGVR),
		"sts":          namespaced(statefulSetsGVR),
		"daemonsets":   namespaced(daemonSetsGVR),
		"daemonset":    namespaced(daemonSetsGVR),
		"ds":           namespaced(daemonSetsGVR),
		"replicasets":  namespaced(replicaSetsGVR),
		"replicaset":   namespaced(replicaSetsGVR),
		"rs":           namespaced(replicaSetsGVR),
	}
}

// resolveResourceType maps a resource type alias or kind to its GVR.
func (c *kubernetesClient) resolveResourceType(resourceType string) (resourceMapping, error) {
	mapping, exists := c.builtinResources[strings.ToLower(resourceType)]
	if !exists {
		return resourceMapping{}, fmt.Errorf("%w: %q", ErrUnknownResourceType, resourceType)
	}
	return mapping, nil
}
