// ==============================================================================================
// FILE: internal/logging/handler.go
// ==============================================================================================
// PACKAGE: logging
// PURPOSE: Structured logging for the demonstration host. A slog.Handler wrapper stamps a
//          service name and, when present, OpenTelemetry trace/span context onto every record.
//          Adapted directly from holomush's internal/logging/handler.go traceHandler.
// ==============================================================================================

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// traceHandler wraps a slog.Handler, adding service identity and trace
// context to every record it handles.
type traceHandler struct {
	handler slog.Handler
	service string
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("service", h.service))

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	return h.handler.Handle(ctx, r)
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{handler: h.handler.WithAttrs(attrs), service: h.service}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{handler: h.handler.WithGroup(name), service: h.service}
}

// Setup builds a configured *slog.Logger. format is "json" or "text"
// (defaults to "text" for anything else); w defaults to os.Stderr when nil.
// level controls the minimum record level emitted.
func Setup(service, format string, level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var base slog.Handler
	if format == "json" {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	return slog.New(&traceHandler{handler: base, service: service})
}

// ParseLevel maps the config's log-level strings to slog.Level, defaulting
// to Info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
