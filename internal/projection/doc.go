// Package projection turns raw Kubernetes objects into the compact summary
// records the control panel renders, and converts objects to and from YAML
// for the "view definition" and "apply" flows.
//
// Every function in this package is pure: it receives already-fetched
// objects plus a caller-supplied "now" and never performs I/O. Optional
// fields that are missing from an object project to their zero value
// (empty string or 0), never to null.
//
// Example usage:
//
//	items, err := client.List(ctx, "", "default", "pods", k8s.ListOptions{})
//	if err != nil {
//		return err
//	}
//	pods, err := projection.Pods(items, time.Now())
package projection
