// Package cmd provides the command-line interface for kube-panel.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	kube-panel [flags]                 # Starts the server (default)
//	kube-panel serve [flags]           # Explicitly starts the server
//	kube-panel version                 # Shows version information
//	kube-panel self-update             # Updates to latest release
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for a panel that spawns the backend
//   - sse: Server-Sent Events over HTTP
//   - streamable-http: Streamable HTTP transport - for a browser front end
//
// Serve settings come from flags, KUBE_PANEL_* environment variables and an
// optional YAML file given with --config, in that order of precedence.
//
//	kube-panel serve --transport streamable-http --http-addr :9000 --allowed-origins http://localhost:5173
//	KUBE_PANEL_NON_DESTRUCTIVE=true kube-panel serve
package cmd
