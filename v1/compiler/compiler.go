package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// Result describes one compilation.
type Result struct {
	// Source is the base name of the compiled schema.
	Source string

	// Artifact is the store name the descriptor set was published under.
	Artifact string

	Success bool

	// Diagnostics is protoc's stderr; warnings may be present on success.
	Diagnostics string

	// Size is the artifact size in bytes.
	Size int
}

// Compile runs the toolchain on sourcePath, using its directory as the
// import root, and publishes the descriptor set to the artifact store,
// replacing any previous artifact for the same source.
//
// A rejected schema yields a *CompileError (the Result carries the same
// diagnostics); failing to run protoc yields ErrToolchainUnavailable, and
// running past Config.Timeout yields ErrCompileTimeout. The
// artifact is written to a private temp directory first, so the store never
// sees partial output.
func (c *Compiler) Compile(ctx context.Context, sourcePath string) (res Result, err error) {
	source := filepath.Base(sourcePath)
	res = Result{Source: source, Artifact: artifact.ArtifactName(source)}

	start := time.Now()
	ctx, span := c.tracer.StartSpan(ctx, "compiler.compile")
	defer func() {
		if err != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
		c.observe(source, start, err, int64(res.Size))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "protobench-compile-*")
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrToolchainUnavailable, err)
	}
	defer os.RemoveAll(tmpDir)

	output := filepath.Join(tmpDir, res.Artifact)
	exitCode, stderr, err := c.toolchain.Run(ctx, output, filepath.Dir(sourcePath), source)
	res.Diagnostics = stderr
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return res, fmt.Errorf("%w: %s after %s: %w", ErrCompileTimeout, source, c.cfg.Timeout, err)
	case errors.Is(err, context.Canceled):
		return res, fmt.Errorf("compiling %s: %w", source, err)
	case err != nil:
		return res, fmt.Errorf("%w: running protoc for %s: %w", ErrToolchainUnavailable, source, err)
	}
	if exitCode != 0 {
		c.logWarn(ctx, "schema rejected by protoc", nil, map[string]interface{}{
			"source":    source,
			"exit_code": exitCode,
		})
		return res, &CompileError{Filename: source, ExitCode: exitCode, Diagnostics: stderr}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return res, fmt.Errorf("%w: protoc wrote no descriptor set for %s: %w", ErrToolchainUnavailable, source, err)
	}
	if err := c.store.Put(ctx, res.Artifact, data); err != nil {
		return res, fmt.Errorf("failed to publish artifact %s: %w", res.Artifact, err)
	}

	res.Success = true
	res.Size = len(data)
	c.logInfo(ctx, "schema compiled", map[string]interface{}{
		"source":   source,
		"artifact": res.Artifact,
		"bytes":    res.Size,
	})
	return res, nil
}

func (c *Compiler) observe(source string, start time.Time, err error, size int64) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "compiler",
		Operation: "compile",
		Resource:  source,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
	})
}

func (c *Compiler) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (c *Compiler) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
