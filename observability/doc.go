// Package observability provides OpenTelemetry tracing and metrics for
// mercure processes.
//
// Setup installs both providers from a Config, exporting over OTLP HTTP:
//
//	shutdown, err := observability.Setup(ctx, cfg, "mercure", version.GetVersionInfo().Version)
//	defer shutdown(ctx)
//
// Tracked operations pair a span with operation metrics:
//
//	oc := observability.NewOperationContext("mercure", "publish", requestID, metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanPublish)
//	err := send(ctx)
//	oc.EndOperation(ctx, span, "dispatch", err)
//
// With export disabled the global no-op providers stay installed, so
// instruments and spans cost nothing.
package observability
