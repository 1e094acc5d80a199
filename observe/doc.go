// Package observe provides the telemetry primitives used to trace GraphQL
// execution stages: a span-oriented Tracer over OpenTelemetry, stage
// metrics, a structured JSON logger and a Middleware that runs one stage
// call inside a span.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup.
package observe
