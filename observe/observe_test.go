package observe

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jonwraymond/graphqltrace/observe/exporters"
)

func TestMain(m *testing.M) {
	exporters.Stdout = io.Discard
	os.Exit(m.Run())
}

func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "graphql-api",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "otlp",
			SamplePct: 0.5,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "missing service name",
			cfg:  Config{},
			want: ErrMissingServiceName,
		},
		{
			name: "unknown tracing exporter",
			cfg: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "zipkin", SamplePct: 1},
			},
			want: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct above range",
			cfg: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
			},
			want: ErrInvalidSamplePct,
		},
		{
			name: "sample pct negative",
			cfg: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: -0.1},
			},
			want: ErrInvalidSamplePct,
		},
		{
			name: "unknown metrics exporter",
			cfg: Config{
				ServiceName: "svc",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "statsd"},
			},
			want: ErrInvalidMetricsExporter,
		},
		{
			name: "unknown log level",
			cfg: Config{
				ServiceName: "svc",
				Logging:     LoggingConfig{Enabled: true, Level: "verbose"},
			},
			want: ErrInvalidLogLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() error = %v, want %v", err, tc.want)
			}
		})
	}
}

// TestConfigValidate_DisabledSkipsChecks verifies disabled subsystems are not validated.
func TestConfigValidate_DisabledSkipsChecks(t *testing.T) {
	cfg := Config{
		ServiceName: "svc",
		Tracing:     TracingConfig{Enabled: false, Exporter: "bogus", SamplePct: 7},
		Metrics:     MetricsConfig{Enabled: false, Exporter: "bogus"},
		Logging:     LoggingConfig{Enabled: false, Level: "bogus"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled subsystems to be ignored, got: %v", err)
	}
}

func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "graphql-api"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer (noop)")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter (noop)")
	}
	if obs.Logger() == nil {
		t.Error("expected non-nil logger (noop)")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown error = %v", err)
	}
}

func TestNewObserver_ReturnsTracerAndMeter(t *testing.T) {
	cfg := Config{
		ServiceName: "graphql-api",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	got, err := mw.Run(context.Background(), SpanMeta{Name: "graphql.parse"},
		func(context.Context) (any, error) { return "ok", nil }, nil)
	if err != nil || got != "ok" {
		t.Errorf("Run() = %v, %v", got, err)
	}
}

func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("expected ErrMissingServiceName, got %v", err)
	}
}

func TestNewObserver_UnreachableExporterConfig(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	cfg := Config{
		ServiceName: "graphql-api",
		Tracing:     TracingConfig{Enabled: true, Exporter: "jaeger", SamplePct: 1.0},
	}
	if _, err := NewObserver(context.Background(), cfg); !errors.Is(err, exporters.ErrEndpointNotConfigured) {
		t.Fatalf("expected ErrEndpointNotConfigured, got %v", err)
	}
}

// TestObserver_ShutdownIdempotent verifies repeated shutdowns return the same result.
func TestObserver_ShutdownIdempotent(t *testing.T) {
	cfg := Config{
		ServiceName: "graphql-api",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	first := obs.Shutdown(context.Background())
	second := obs.Shutdown(context.Background())
	if first != nil {
		t.Errorf("expected no shutdown error, got: %v", first)
	}
	if first != second {
		t.Errorf("second Shutdown() = %v, want %v", second, first)
	}
}

func TestMiddlewareFromObserver_Nil(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Fatalf("expected ErrNilObserver, got %v", err)
	}
}
