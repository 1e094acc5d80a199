// Package exporters builds OpenTelemetry span exporters and metric readers
// by name.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	// ErrUnknownExporter indicates an exporter name this package does not build.
	ErrUnknownExporter = errors.New("exporters: unknown exporter")

	// ErrEndpointNotConfigured indicates no collector endpoint is set in the environment.
	ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")
)

// Stdout is where the stdout exporters write. Tests may redirect it.
var Stdout io.Writer = os.Stdout

// endpoint returns the first non-empty environment variable among keys.
func endpoint(keys ...string) (string, error) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: set one of %v", ErrEndpointNotConfigured, keys)
}

// NewTracingExporter creates a span exporter.
// Supported names: stdout, otlp, jaeger, none ("" is none).
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(Stdout), stdouttrace.WithPrettyPrint())

	case "otlp":
		if _, err := endpoint("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)

	case "jaeger":
		// Jaeger ingests OTLP natively.
		ep, err := endpoint("OTEL_EXPORTER_JAEGER_ENDPOINT")
		if err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(ep))

	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
}

// NewMetricsReader creates a metric reader.
// Supported names: stdout, otlp, prometheus, none ("" is none).
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	var (
		exp sdkmetric.Exporter
		err error
	)

	switch name {
	case "stdout":
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(Stdout))

	case "otlp":
		if _, err = endpoint("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"); err != nil {
			return nil, err
		}
		exp, err = otlpmetricgrpc.New(ctx)

	case "prometheus":
		reader, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		return reader, nil

	case "none", "":
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}

	if err != nil {
		return nil, fmt.Errorf("create %s metrics exporter: %w", name, err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}
