// Package metrics exposes protobench's Prometheus metrics.
//
// *Metrics is the application's observability.Observer: the compiler,
// registry and dispatch engine report each operation to it, and it turns
// those reports into counters and histograms:
//
//	<ns>_operations_total{component,operation,status}
//	<ns>_operation_duration_seconds{component,operation}
//	<ns>_payload_bytes{component,operation}
//	<ns>_dispatch_responses_total{status_code}
//	<ns>_http_requests_total{route,status}
//	<ns>_http_request_duration_seconds{route}
//
// Every metric carries a constant service label. The /metrics endpoint is
// served on Config.Address when Config.Enabled is true.
//
// Usage with fx:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Enabled: true, Address: ":9090", Namespace: "protobench"}
//	    }),
//	)
package metrics
