package compiler

import (
	"errors"
	"fmt"
)

// ErrToolchainUnavailable is returned when protoc cannot be run at all:
// the binary is missing, not executable, or produced no output.
var ErrToolchainUnavailable = errors.New("compiler: toolchain unavailable")

// ErrCompileTimeout is returned when protoc ran but did not finish within
// Config.Timeout.
var ErrCompileTimeout = errors.New("compiler: compile timed out")

// CompileError reports a schema protoc rejected. Diagnostics holds protoc's
// stderr verbatim.
type CompileError struct {
	Filename    string
	ExitCode    int
	Diagnostics string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiler: %s failed to compile (exit %d): %s", e.Filename, e.ExitCode, e.Diagnostics)
}

// IsCompileError reports whether err is a *CompileError and returns it.
func IsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsToolchainUnavailable reports whether err means protoc could not be run.
func IsToolchainUnavailable(err error) bool {
	return errors.Is(err, ErrToolchainUnavailable)
}

// IsCompileTimeout reports whether err means protoc exceeded the compile timeout.
func IsCompileTimeout(err error) bool {
	return errors.Is(err, ErrCompileTimeout)
}
