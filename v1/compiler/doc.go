// Package compiler runs protoc over uploaded schemas and publishes the
// resulting descriptor sets to the artifact store.
//
// The external toolchain sits behind the Toolchain interface; Protoc is the
// subprocess implementation. Failures come in two shapes: *CompileError when
// protoc rejects the schema (Diagnostics is its stderr, verbatim) and
// ErrToolchainUnavailable when protoc could not run at all.
package compiler
