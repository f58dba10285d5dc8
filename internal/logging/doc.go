// Package logging provides structured logging utilities for kube-panel.
//
// It builds the process-wide *slog.Logger, routes client-go's klog output
// through it, and defines attribute helpers so every package logs the same
// keys:
//
//	logger.Info("listing resources",
//	    logging.KubeContext(kubeContext),
//	    logging.Namespace("default"),
//	    logging.ResourceType("pods"))
//
// API server URLs and error strings that may carry them should go through
// Host and SanitizedErr, which redact IP addresses.
package logging
