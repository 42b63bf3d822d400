// Package logger provides structured logging for protobench.
//
// It wraps Uber's Zap with a small API that takes a message, an optional error
// and any number of field maps, so call sites stay uniform across the compile,
// registry and dispatch paths.
//
// # Architecture
//
//   - Logger interface: the contract other packages depend on
//   - LoggerClient struct: the Zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug})
//	log.Info("Schema uploaded", nil, map[string]interface{}{
//		"filename": "sample.proto",
//		"types":    4,
//	})
//
// # Context-Aware Logging
//
// With EnableTracing set, the *WithContext variants add trace_id and span_id
// taken from the active OpenTelemetry span:
//
//	log.ErrorWithContext(ctx, "Dispatch failed", err, map[string]interface{}{
//		"url": req.URL,
//	})
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace/span IDs
//	LOGGER_SERVICE_NAME=protobench  # "service" field
//	LOGGER_DEVELOPMENT=true         # console encoder
//
// All methods are safe for concurrent use.
package logger
