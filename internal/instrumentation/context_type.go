package instrumentation

import "strings"

// Kubeconfig context names are user-controlled and unbounded, so metrics and
// low-cardinality log fields carry a classification instead of the raw name.

// ContextType represents a classification of kubeconfig context names.
type ContextType string

// Context type classifications.
const (
	ContextTypeProduction  ContextType = "production"
	ContextTypeStaging     ContextType = "staging"
	ContextTypeDevelopment ContextType = "development"
	ContextTypeLocal       ContextType = "local"
	ContextTypeInCluster   ContextType = "in-cluster"

	// ContextTypeCurrent is used when no context was named and the
	// kubeconfig's current context applies.
	ContextTypeCurrent ContextType = "current"

	ContextTypeOther ContextType = "other"
)

// localContextPrefixes match the names local cluster tools give their contexts.
var localContextPrefixes = []string{"kind-", "minikube", "docker-desktop", "rancher-desktop", "k3d-", "colima"}

// ClassifyContextName classifies a kubeconfig context name.
//
// Matching is case-insensitive:
//
//	| Pattern                                    | Classification |
//	|--------------------------------------------|----------------|
//	| Empty string                               | current        |
//	| in-cluster                                 | in-cluster     |
//	| kind-, minikube, docker-desktop, k3d- ...  | local          |
//	| prod-, prod_, production, -prod-, -prod    | production     |
//	| staging-, stg-, staging, -stg-, -stg       | staging        |
//	| dev-, development, -dev-, -dev, test-, ... | development    |
//	| Everything else                            | other          |
func ClassifyContextName(name string) string {
	if name == "" {
		return string(ContextTypeCurrent)
	}

	n := strings.ToLower(name)

	if n == "in-cluster" {
		return string(ContextTypeInCluster)
	}

	for _, prefix := range localContextPrefixes {
		if strings.HasPrefix(n, prefix) {
			return string(ContextTypeLocal)
		}
	}

	if strings.HasPrefix(n, "prod-") ||
		strings.HasPrefix(n, "prod_") ||
		strings.Contains(n, "production") ||
		strings.Contains(n, "-prod-") ||
		strings.HasSuffix(n, "-prod") {
		return string(ContextTypeProduction)
	}

	if strings.HasPrefix(n, "staging-") ||
		strings.HasPrefix(n, "staging_") ||
		strings.HasPrefix(n, "stg-") ||
		strings.Contains(n, "staging") ||
		strings.Contains(n, "-stg-") ||
		strings.HasSuffix(n, "-stg") {
		return string(ContextTypeStaging)
	}

	if strings.HasPrefix(n, "dev-") ||
		strings.HasPrefix(n, "dev_") ||
		strings.Contains(n, "development") ||
		strings.Contains(n, "-dev-") ||
		strings.HasSuffix(n, "-dev") ||
		strings.HasPrefix(n, "test-") ||
		strings.HasPrefix(n, "test_") ||
		strings.Contains(n, "-test-") ||
		strings.HasSuffix(n, "-test") {
		return string(ContextTypeDevelopment)
	}

	return string(ContextTypeOther)
}
