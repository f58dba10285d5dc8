// Package tools provides shared utilities for MCP tool handlers.
package tools

import (
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giantswarm/kube-panel/internal/server"
)

// CheckMutatingOperation gates the panel's two write paths, pod deletion and
// manifest apply. It returns a tool error result when the operation is
// refused and nil when the handler may proceed.
//
// With --non-destructive set, delete and apply are refused unless --dry-run
// is also set or the operation appears in --allowed-operations.
func CheckMutatingOperation(sc *server.ServerContext, operation string) *mcp.CallToolResult {
	config := sc.Config()
	if !config.NonDestructiveMode || config.DryRun {
		return nil
	}
	if slices.Contains(config.AllowedOperations, operation) {
		return nil
	}

	return mcp.NewToolResultError(fmt.Sprintf(
		"%s is disabled: the panel runs in non-destructive mode. Retry with --dry-run to validate only, or start it with --allowed-operations %s to enable it",
		cases.Title(language.English).String(operation),
		operation,
	))
}
