// Package k8s is the cluster-access layer of the control panel.
//
// It loads contexts from kubeconfig (or uses the in-cluster service
// account), keeps one dynamic client per context, and exposes the handful of
// operations the UI needs: get, list, delete and server-side apply of
// resources addressed by a short resource type such as "pods", "sts" or
// "svc".
//
// The interfaces are broken down into focused concerns:
//
//   - ContextManager: kubeconfig context operations
//   - ResourceManager: resource get/list/delete/apply
//
// Every operation accepts a kubeContext parameter; an empty value means the
// currently selected context.
//
// Example usage:
//
//	client, err := k8s.NewClient(&k8s.ClientConfig{Logger: slog.Default()})
//	if err != nil {
//		return err
//	}
//	pods, err := client.List(ctx, "", "default", "pods", k8s.ListOptions{})
//
// Safety settings on ClientConfig (non-destructive mode, dry-run, allowed
// operations and restricted namespaces) are enforced before any request is
// sent to the API server.
package k8s
