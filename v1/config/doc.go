// Package config loads protobench's configuration from an optional TOML
// file and the environment, and hands each package its own section via fx.
//
// Example file:
//
//	[server]
//	address = ":8080"
//
//	[artifact]
//	backend = "minio"
//
//	[artifact.minio]
//	endpoint = "localhost:9000"
//	bucket = "protobench"
//
//	[dispatch]
//	timeout = "10s"
//
// Environment variables use the names on each package's Config tags, e.g.
// SERVER_ADDRESS, ARTIFACT_BACKEND or DISPATCH_TIMEOUT, and win over the file.
package config
