package k8s

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client. They can be checked using errors.Is().
var (
	// ErrOperationNotAllowed indicates that the client configuration forbids
	// the requested operation.
	ErrOperationNotAllowed = errors.New("operation not allowed")

	// ErrNamespaceRestricted indicates access to a restricted namespace.
	ErrNamespaceRestricted = errors.New("namespace restricted")

	// ErrUnknownResourceType indicates a resource type that has no mapping.
	ErrUnknownResourceType = errors.New("unknown resource type")

	// ErrContextNotFound indicates a context missing from kubeconfig.
	ErrContextNotFound = errors.New("context not found")
)

// OperationError provides context about an operation rejected by the
// client's safety settings.
type OperationError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %q %s", e.Operation, e.Reason)
}

// Unwrap returns ErrOperationNotAllowed for use with errors.Is().
func (e *OperationError) Unwrap() error {
	return ErrOperationNotAllowed
}
