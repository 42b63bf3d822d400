package compiler

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Toolchain runs the protobuf compiler for one source file.
//
// It writes a descriptor set including all imports to outputFile, resolving
// sourceFile and its imports relative to importRoot. A non-zero exitCode
// with nil err means the schema was rejected; err is reserved for failing to
// run the toolchain at all.
type Toolchain interface {
	Run(ctx context.Context, outputFile, importRoot, sourceFile string) (exitCode int, stderr string, err error)
}

// Logger is the subset of logger.Logger the compiler uses.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is the subset of *tracer.Tracer the compiler uses.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}
