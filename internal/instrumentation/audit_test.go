package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrMap(attrs []slog.Attr) map[string]slog.Value {
	m := make(map[string]slog.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation("get_pods")

	assert.Equal(t, "get_pods", ti.Tool)
	assert.False(t, ti.StartTime.IsZero())

	time.Sleep(time.Millisecond)
	ti.CompleteSuccess()

	assert.True(t, ti.Success)
	assert.NotZero(t, ti.Duration)
	assert.Empty(t, ti.Error)
	assert.Equal(t, StatusSuccess, ti.Status())
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("delete_pod").CompleteWithError(errors.New("forbidden"))

	assert.False(t, ti.Success)
	assert.Equal(t, "forbidden", ti.Error)
	assert.Equal(t, StatusError, ti.Status())
}

func TestToolInvocation_Complete_NilError(t *testing.T) {
	ti := NewToolInvocation("get_pods").Complete(false, nil)
	assert.Empty(t, ti.Error)
}

func TestToolInvocation_Chaining(t *testing.T) {
	ti := NewToolInvocation("apply_pod_yaml").
		WithKubeContext("staging-eu").
		WithResource("web", "pods", "nginx").
		WithMutation(true).
		CompleteSuccess()

	assert.Equal(t, "staging-eu", ti.KubeContext)
	assert.Equal(t, "web", ti.Namespace)
	assert.Equal(t, "pods", ti.ResourceType)
	assert.Equal(t, "nginx", ti.ResourceName)
	assert.True(t, ti.Mutating)
	assert.True(t, ti.DryRun)
	assert.Equal(t, "staging", ti.ContextType())
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("delete_pod").
		WithKubeContext("prod-eu-west").
		WithResource("production", "pods", "nginx-abc123").
		CompleteSuccess()
	ti.TraceID = "abc123"

	attrs := attrMap(ti.LogAttrs())

	for _, key := range []string{"tool", "context_type", "duration", "success", "trace_id"} {
		assert.Contains(t, attrs, key)
	}
	assert.NotContains(t, attrs, "context")
	assert.NotContains(t, attrs, "resource_name")
	assert.Equal(t, "production", attrs["context_type"].String())
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation("delete_pod").
		WithKubeContext("prod-eu-west").
		WithResource("production", "pods", "nginx-abc123").
		WithMutation(false).
		CompleteSuccess()
	ti.TraceID = "abc123"
	ti.SpanID = "span789"

	attrs := attrMap(ti.LogAuditAttrs())

	assert.Equal(t, "prod-eu-west", attrs["context"].String())
	assert.Equal(t, "nginx-abc123", attrs["resource_name"].String())
	assert.False(t, attrs["dry_run"].Bool())
	assert.Equal(t, "abc123", attrs["trace_id"].String())
	assert.Equal(t, "span789", attrs["span_id"].String())
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation("get_pods").WithSpanContext(context.Background())

	assert.Empty(t, ti.TraceID)
	assert.Empty(t, ti.SpanID)
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestNewAuditLogger(t *testing.T) {
	assert.NotNil(t, NewAuditLogger(nil).logger)

	logger := slog.Default()
	assert.Same(t, logger, NewAuditLogger(logger).logger)
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	tests := []struct {
		name      string
		ti        *ToolInvocation
		wantLevel string
	}{
		{
			name:      "read is debug",
			ti:        NewToolInvocation("get_pods").CompleteSuccess(),
			wantLevel: "DEBUG",
		},
		{
			name:      "mutation is info",
			ti:        NewToolInvocation("delete_pod").WithMutation(false).CompleteSuccess(),
			wantLevel: "INFO",
		},
		{
			name:      "failure is warn",
			ti:        NewToolInvocation("get_pods").CompleteWithError(errors.New("boom")),
			wantLevel: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			NewAuditLogger(logger).LogToolInvocation(context.Background(), tt.ti)

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, "tool invocation", record["msg"])
			assert.Equal(t, tt.ti.Tool, record["tool"])
		})
	}
}

func TestAuditLogger_NilSafe(t *testing.T) {
	var al *AuditLogger
	assert.NotPanics(t, func() {
		al.LogToolInvocation(context.Background(), NewToolInvocation("get_pods"))
	})
}
