package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewLoggerClient(t *testing.T) {
	client := NewLoggerClient(Config{Level: Debug, ServiceName: "bench-test"})
	require.NotNil(t, client)
	assert.True(t, client.Zap.Core().Enabled(zapcore.DebugLevel))
}

func TestLoggerFields(t *testing.T) {
	client, logs := newObservedLogger(false)

	client.Error("compile failed", errors.New("boom"), map[string]interface{}{
		"filename": "sample.proto",
	}, map[string]interface{}{
		"filename": "override.proto",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctxMap := entries[0].ContextMap()
	assert.Equal(t, "boom", ctxMap["error"])
	assert.Equal(t, "override.proto", ctxMap["filename"])
}

func TestLoggerWithContextAddsTraceIDs(t *testing.T) {
	client, logs := newObservedLogger(true)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "dispatch")
	defer span.End()

	client.InfoWithContext(ctx, "dispatching", nil, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctxMap := entries[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), ctxMap["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), ctxMap["span_id"])
}

func TestLoggerWithContextTracingDisabled(t *testing.T) {
	client, logs := newObservedLogger(false)

	client.WarnWithContext(context.Background(), "no trace", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	_, ok := entries[0].ContextMap()["trace_id"]
	assert.False(t, ok)
}
