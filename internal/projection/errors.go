package projection

import (
	"errors"
	"fmt"
)

// Sentinel errors signalled by the projector.
// They can be checked using errors.Is().
var (
	// ErrMissingField indicates that a required field is absent from a
	// manifest submitted for apply.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformedInput indicates that the input is not valid YAML or is not
	// structurally a Kubernetes object.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSerializationFailure indicates that an object could not be rendered
	// to YAML.
	ErrSerializationFailure = errors.New("serialization failure")
)

// FieldError reports a required field that was absent or empty.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "metadata.namespace".
	Field string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

// Unwrap returns ErrMissingField for use with errors.Is().
func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// InputError reports input that cannot be interpreted as a Kubernetes object.
type InputError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedInput, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedInput, e.Reason)
}

// Is matches ErrMalformedInput.
func (e *InputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Unwrap returns the underlying parse error, if any.
func (e *InputError) Unwrap() error {
	return e.Err
}

// SerializationError wraps an encoder failure.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSerializationFailure, e.Err)
}

// Is matches ErrSerializationFailure.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerializationFailure
}

// Unwrap returns the encoder error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}
