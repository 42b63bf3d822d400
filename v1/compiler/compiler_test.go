package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// fakeToolchain records its arguments and writes a canned descriptor set.
type fakeToolchain struct {
	output     []byte
	exitCode   int
	stderr     string
	err        error
	skipWrite  bool
	gotOut     string
	gotRoot    string
	gotSource  string
	invocation int
}

func (f *fakeToolchain) Run(ctx context.Context, outputFile, importRoot, sourceFile string) (int, string, error) {
	f.invocation++
	f.gotOut, f.gotRoot, f.gotSource = outputFile, importRoot, sourceFile
	if f.err != nil {
		return -1, f.stderr, f.err
	}
	if f.exitCode == 0 && !f.skipWrite {
		if err := os.WriteFile(outputFile, f.output, 0o644); err != nil {
			return -1, "", err
		}
	}
	return f.exitCode, f.stderr, nil
}

func newStore(t *testing.T) *artifact.FileStore {
	t.Helper()
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, sampleschema.SampleFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleschema.SampleSource), 0o644))
	return path
}

func TestCompile_PublishesArtifact(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	source := writeSource(t)
	toolchain := &fakeToolchain{output: sampleschema.SampleDescriptorSet(), stderr: "warning: unused import"}

	var observed []observability.OperationContext
	c := New(Config{}, toolchain, store).WithObserver(observability.ObserverFunc(func(op observability.OperationContext) {
		observed = append(observed, op)
	}))

	res, err := c.Compile(ctx, source)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "sample.proto", res.Source)
	assert.Equal(t, "sample.pb", res.Artifact)
	assert.Equal(t, "warning: unused import", res.Diagnostics)
	assert.Equal(t, len(sampleschema.SampleDescriptorSet()), res.Size)

	assert.Equal(t, filepath.Dir(source), toolchain.gotRoot)
	assert.Equal(t, "sample.proto", toolchain.gotSource)
	assert.Equal(t, "sample.pb", filepath.Base(toolchain.gotOut))
	assert.NotEqual(t, store.Dir(), filepath.Dir(toolchain.gotOut), "protoc must not write into the store directly")
	_, statErr := os.Stat(toolchain.gotOut)
	assert.True(t, os.IsNotExist(statErr), "temp output is cleaned up")

	data, err := store.Get(ctx, "sample.pb")
	require.NoError(t, err)
	assert.Equal(t, sampleschema.SampleDescriptorSet(), data)

	require.Len(t, observed, 1)
	assert.Equal(t, "compiler", observed[0].Component)
	assert.Equal(t, "compile", observed[0].Operation)
	assert.NoError(t, observed[0].Error)
}

func TestCompile_RecompileReplacesArtifact(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	source := writeSource(t)

	_, err := New(Config{}, &fakeToolchain{output: []byte("v1")}, store).Compile(ctx, source)
	require.NoError(t, err)
	_, err = New(Config{}, &fakeToolchain{output: []byte("v2")}, store).Compile(ctx, source)
	require.NoError(t, err)

	data, err := store.Get(ctx, "sample.pb")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestCompile_SchemaRejected(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	source := writeSource(t)
	diag := `sample.proto:3:5: "strin" is not defined.`

	res, err := New(Config{}, &fakeToolchain{exitCode: 1, stderr: diag}, store).Compile(ctx, source)
	require.Error(t, err)

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, diag, ce.Diagnostics)
	assert.Equal(t, 1, ce.ExitCode)
	assert.Equal(t, "sample.proto", ce.Filename)
	assert.False(t, res.Success)
	assert.Equal(t, diag, res.Diagnostics)
	assert.False(t, IsToolchainUnavailable(err))

	_, err = store.Get(ctx, "sample.pb")
	assert.True(t, artifact.IsNotFound(err))
}

func TestCompile_ToolchainUnavailable(t *testing.T) {
	ctx := context.Background()
	source := writeSource(t)

	t.Run("run fails", func(t *testing.T) {
		cause := errors.New("exec: \"protoc\": executable file not found in $PATH")
		_, err := New(Config{}, &fakeToolchain{err: cause}, newStore(t)).Compile(ctx, source)
		assert.True(t, IsToolchainUnavailable(err))
		assert.ErrorIs(t, err, cause)
		_, isCompile := IsCompileError(err)
		assert.False(t, isCompile)
	})

	t.Run("no output written", func(t *testing.T) {
		_, err := New(Config{}, &fakeToolchain{skipWrite: true}, newStore(t)).Compile(ctx, source)
		assert.True(t, IsToolchainUnavailable(err))
	})
}

// stallingToolchain blocks until its context ends.
type stallingToolchain struct{}

func (stallingToolchain) Run(ctx context.Context, _, _, _ string) (int, string, error) {
	<-ctx.Done()
	return -1, "", ctx.Err()
}

func TestCompile_Timeout(t *testing.T) {
	source := writeSource(t)
	c := New(Config{Timeout: 20 * time.Millisecond}, stallingToolchain{}, newStore(t))

	_, err := c.Compile(context.Background(), source)
	require.Error(t, err)
	assert.True(t, IsCompileTimeout(err))
	assert.False(t, IsToolchainUnavailable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCompile_CallerCancelled(t *testing.T) {
	source := writeSource(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}, stallingToolchain{}, newStore(t)).Compile(ctx, source)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsCompileTimeout(err))
	assert.False(t, IsToolchainUnavailable(err))
}

func TestProtoc_MissingBinary(t *testing.T) {
	source := writeSource(t)
	c := New(Config{}, NewProtoc(filepath.Join(t.TempDir(), "no-such-protoc")), newStore(t))

	_, err := c.Compile(context.Background(), source)
	assert.True(t, IsToolchainUnavailable(err))
}

func TestProtoc_PassesArgumentsAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script toolchain needs a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "protoc")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" >&2\nexit 3\n"), 0o755))

	code, stderr, err := NewProtoc(script).Run(context.Background(), "/out/x.pb", "/schemas", "x.proto")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "--descriptor_set_out=/out/x.pb --include_imports --proto_path=/schemas x.proto\n", stderr)
}
