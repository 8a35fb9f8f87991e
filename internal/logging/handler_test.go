package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSetupJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("lichen", "json", slog.LevelInfo, &buf)
	logger.Info("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "lichen", entry["service"])
}

func TestSetupTextFormatDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("lichen", "anything-else", slog.LevelInfo, &buf)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "lichen")
}

func TestHandlerAddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("lichen", "json", slog.LevelInfo, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "traced message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
}

func TestHandlerOmitsTraceFieldsWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("lichen", "json", slog.LevelInfo, &buf)
	logger.Info("no trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTrace := entry["trace_id"]
	assert.False(t, hasTrace)
}

func TestSetupRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("lichen", "json", slog.LevelWarn, &buf)
	logger.Debug("should be suppressed")
	assert.Empty(t, buf.String())

	logger.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
