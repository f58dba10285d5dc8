package projection

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Default-on-absent accessors. A field that is missing, or present with an
// unexpected type, yields the zero value. All kinds read optional fields
// through these helpers so the defaulting policy lives in one place.

func stringAt(obj map[string]interface{}, fields ...string) string {
	v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if !found || err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// int64At accepts the integer and float representations produced by the
// JSON and YAML decoders.
func int64At(obj map[string]interface{}, fields ...string) int64 {
	v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if !found || err != nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func int32At(obj map[string]interface{}, fields ...string) int32 {
	return int32(int64At(obj, fields...))
}

// firstElemAt returns the first element of a slice of objects, or nil.
func firstElemAt(obj map[string]interface{}, fields ...string) map[string]interface{} {
	v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if !found || err != nil {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	first, ok := items[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return first
}

// checkObject verifies that obj is structurally a resource: non-nil with a
// metadata map.
func checkObject(obj *unstructured.Unstructured) error {
	if obj == nil || obj.Object == nil {
		return &InputError{Reason: "object is nil"}
	}
	md, ok := obj.Object["metadata"]
	if !ok {
		return &InputError{Reason: "object has no metadata"}
	}
	if _, ok := md.(map[string]interface{}); !ok {
		return &InputError{Reason: "metadata is not an object"}
	}
	return nil
}
