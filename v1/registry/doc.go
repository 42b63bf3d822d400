// Package registry resolves compiled schemas into message descriptors.
//
// Artifacts are read from the artifact store on each call; the registry
// itself is stateless. FindMessage scans all schemas concurrently and picks
// the first match in filename order, so lookups are deterministic even when
// two schemas declare the same type.
package registry
