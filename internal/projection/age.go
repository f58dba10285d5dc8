package projection

import (
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Age returns now minus created in whole seconds, truncated toward zero.
// A nil timestamp yields 0. Timestamps in the future give a negative age,
// which is returned unchanged.
func Age(created *time.Time, now time.Time) int64 {
	if created == nil {
		return 0
	}
	return int64(now.Sub(*created) / time.Second)
}

// CreationTimestamp reads metadata.creationTimestamp. It returns nil when the
// field is absent or empty.
func CreationTimestamp(obj *unstructured.Unstructured) (*time.Time, error) {
	if err := checkObject(obj); err != nil {
		return nil, err
	}
	raw := stringAt(obj.Object, "metadata", "creationTimestamp")
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &InputError{Reason: "invalid metadata.creationTimestamp", Err: err}
	}
	return &ts, nil
}

func ageOf(obj *unstructured.Unstructured, now time.Time) (int64, error) {
	created, err := CreationTimestamp(obj)
	if err != nil {
		return 0, err
	}
	return Age(created, now), nil
}
