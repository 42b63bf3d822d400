package compiler

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Protoc runs a protoc binary as a subprocess.
type Protoc struct {
	Path string
}

// NewProtoc returns a Toolchain running the protoc at path.
func NewProtoc(path string) *Protoc {
	if path == "" {
		path = DefaultProtocPath
	}
	return &Protoc{Path: path}
}

// Run invokes
//
//	protoc --descriptor_set_out=<outputFile> --include_imports --proto_path=<importRoot> <sourceFile>
func (p *Protoc) Run(ctx context.Context, outputFile, importRoot, sourceFile string) (int, string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Path,
		"--descriptor_set_out="+outputFile,
		"--include_imports",
		"--proto_path="+importRoot,
		sourceFile,
	)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return -1, stderr.String(), ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stderr.String(), nil
	}
	if err != nil {
		return -1, stderr.String(), err
	}
	return 0, stderr.String(), nil
}
