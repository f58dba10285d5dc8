package k8s

const (
	// Service account paths - default Kubernetes in-cluster locations
	DefaultServiceAccountPath = "/var/run/secrets/kubernetes.io/serviceaccount"
	DefaultTokenPath          = DefaultServiceAccountPath + "/token"
	DefaultCACertPath         = DefaultServiceAccountPath + "/ca.crt"
	DefaultNamespacePath      = DefaultServiceAccountPath + "/namespace"

	// Default performance settings
	DefaultQPSLimit   = 20.0
	DefaultBurstLimit = 30
	DefaultTimeout    = 30 // seconds

	// In-cluster context name
	InClusterContext = "in-cluster"

	// ApplyFieldManager is the field manager recorded for server-side apply.
	ApplyFieldManager = "kubectl-apply"
)

// Operation names used for safety checks, logging and metrics.
const (
	OperationGet    = "get"
	OperationList   = "list"
	OperationDelete = "delete"
	OperationApply  = "apply"
)
