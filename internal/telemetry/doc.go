// Package telemetry wires OpenTelemetry tracing and metrics for keepsake.
//
// Telemetry is off unless telemetry.enabled is set. When on, spans and
// metrics are exported over OTLP (grpc or http/protobuf) and the global
// providers are replaced so that instrumented packages pick them up:
//
//	tel, err := telemetry.New(ctx, telemetry.FromConfig(cfg.Telemetry, version))
//	defer tel.Shutdown(ctx)
//
//	tracer := tel.Tracer("keepsake/journey")
//	meter := tel.Meter("keepsake/journey")
//
// Exporter failures never stop a journey; the instance is marked degraded
// and falls back to the global no-op providers.
//
// Tests use TestTelemetry, which records spans in memory and collects
// metrics on demand:
//
//	tt := telemetry.NewTestTelemetry()
//	tracer := tt.Tracer("test")
//	...
//	tt.AssertSpanExists(t, "journey.scene")
//	v, ok := tt.Int64Sum(ctx, "keepsake.scene.transitions")
package telemetry
